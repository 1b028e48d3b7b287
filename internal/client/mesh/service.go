package mesh

import "context"

// Every method returns the raw JSON payload, or nil when the gateway answered 204.

type GarminService interface {
	// Latest triggers a live pull upstream and returns the newest wearable metrics.
	Latest(ctx context.Context) ([]byte, error)
	Sync(ctx context.Context) ([]byte, error)
}

type WeightService interface {
	Latest(ctx context.Context) ([]byte, error)
}

type CaloriesService interface {
	Latest(ctx context.Context) ([]byte, error)
	Trend(ctx context.Context) ([]byte, error)
}

type NutritionService interface {
	Sync(ctx context.Context) ([]byte, error)
}

type ActivitiesService interface {
	Trend(ctx context.Context) ([]byte, error)
}

type AIService interface {
	Recommendation(ctx context.Context) ([]byte, error)
}

type MedicalService interface {
	Latest(ctx context.Context) ([]byte, error)
}

type LinkedInService interface {
	Post(ctx context.Context, content string) ([]byte, error)
}
