package mesh

import "net/http"

// Capability names one remote operation exposed by the gateway.
type Capability string

const (
	CapabilityGarminLatest     Capability = "garmin-latest"
	CapabilityWeightLatest     Capability = "weight-latest"
	CapabilityCaloriesLatest   Capability = "calories-latest"
	CapabilityCaloriesTrend    Capability = "calories-trend"
	CapabilityActivitiesTrend  Capability = "activities-trend"
	CapabilityAIRecommendation Capability = "ai-recommendation"
	CapabilityMedicalLatest    Capability = "medical-latest"
	CapabilitySyncGarmin       Capability = "sync-garmin"
	CapabilitySyncNutrition    Capability = "sync-nutrition"
	CapabilityLinkedInPost     Capability = "linkedin-post"
)

type Endpoint struct {
	Method string
	Path   string
}

// garmin/latest and ai/recommendation are POSTs because they trigger work upstream.
var catalog = map[Capability]Endpoint{
	CapabilityGarminLatest:     {Method: http.MethodPost, Path: "/mcp/call/garmin/latest"},
	CapabilityWeightLatest:     {Method: http.MethodGet, Path: "/mcp/call/weight/latest"},
	CapabilityCaloriesLatest:   {Method: http.MethodGet, Path: "/mcp/call/calories/latest"},
	CapabilityCaloriesTrend:    {Method: http.MethodGet, Path: "/mcp/call/calories/trend"},
	CapabilityActivitiesTrend:  {Method: http.MethodGet, Path: "/mcp/call/activities/trend"},
	CapabilityAIRecommendation: {Method: http.MethodPost, Path: "/mcp/call/ai/recommendation"},
	CapabilityMedicalLatest:    {Method: http.MethodGet, Path: "/mcp/call/medical/latest"},
	CapabilitySyncGarmin:       {Method: http.MethodPost, Path: "/mcp/call/sync/garmin"},
	CapabilitySyncNutrition:    {Method: http.MethodPost, Path: "/mcp/call/sync/nutrition"},
	CapabilityLinkedInPost:     {Method: http.MethodPost, Path: "/mcp/call/linkedin/post"},
}

func Lookup(c Capability) (Endpoint, bool) {
	ep, ok := catalog[c]
	return ep, ok
}

func Capabilities() []Capability {
	return []Capability{
		CapabilityGarminLatest,
		CapabilityWeightLatest,
		CapabilityCaloriesLatest,
		CapabilityCaloriesTrend,
		CapabilityActivitiesTrend,
		CapabilityAIRecommendation,
		CapabilityMedicalLatest,
		CapabilitySyncGarmin,
		CapabilitySyncNutrition,
		CapabilityLinkedInPost,
	}
}
