package mesh

import "context"

type garminService struct{ client *Client }

func (s *garminService) Latest(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityGarminLatest, nil)
}

func (s *garminService) Sync(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilitySyncGarmin, nil)
}

type weightService struct{ client *Client }

func (s *weightService) Latest(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityWeightLatest, nil)
}

type caloriesService struct{ client *Client }

func (s *caloriesService) Latest(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityCaloriesLatest, nil)
}

func (s *caloriesService) Trend(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityCaloriesTrend, nil)
}

type nutritionService struct{ client *Client }

func (s *nutritionService) Sync(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilitySyncNutrition, nil)
}

type activitiesService struct{ client *Client }

func (s *activitiesService) Trend(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityActivitiesTrend, nil)
}

type aiService struct{ client *Client }

func (s *aiService) Recommendation(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityAIRecommendation, nil)
}

type medicalService struct{ client *Client }

func (s *medicalService) Latest(ctx context.Context) ([]byte, error) {
	return s.client.Call(ctx, CapabilityMedicalLatest, nil)
}

type linkedInService struct{ client *Client }

type postRequest struct {
	Content string `json:"content"`
}

func (s *linkedInService) Post(ctx context.Context, content string) ([]byte, error) {
	return s.client.Call(ctx, CapabilityLinkedInPost, postRequest{Content: content})
}
