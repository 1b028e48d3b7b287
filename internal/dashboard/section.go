package dashboard

import (
	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

// Section is one independently loaded slice of the dashboard.
type Section string

const (
	SectionVitals         Section = "vitals"
	SectionWeight         Section = "weight"
	SectionNutrition      Section = "nutrition"
	SectionRecommendation Section = "recommendation"
	SectionMedical        Section = "medical"
	SectionCaloriesTrend  Section = "calories_trend"
	SectionActivities     Section = "activities"
)

var capabilities = map[Section]mesh.Capability{
	SectionVitals:         mesh.CapabilityGarminLatest,
	SectionWeight:         mesh.CapabilityWeightLatest,
	SectionNutrition:      mesh.CapabilityCaloriesLatest,
	SectionRecommendation: mesh.CapabilityAIRecommendation,
	SectionMedical:        mesh.CapabilityMedicalLatest,
	SectionCaloriesTrend:  mesh.CapabilityCaloriesTrend,
	SectionActivities:     mesh.CapabilityActivitiesTrend,
}

// Sections lists every section in load order.
func Sections() []Section {
	return []Section{
		SectionVitals,
		SectionWeight,
		SectionNutrition,
		SectionRecommendation,
		SectionMedical,
		SectionCaloriesTrend,
		SectionActivities,
	}
}

func (s Section) Capability() mesh.Capability {
	return capabilities[s]
}

// Outcome is the settled result of one remote call.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) OK() bool { return o.Err == nil }

// Wearable is the latest wearable pull plus its short trends.
type Wearable struct {
	Vitals        health.Vitals       `json:"vitals"`
	DistanceKm    xopt.Value[float64] `json:"distance_km"`
	HRVTrend      []float64           `json:"hrv_trend"`
	RestingTrend  []float64           `json:"resting_hr_trend"`
	SleepTrend    []float64           `json:"sleep_trend"`
	RunsTrend     []float64           `json:"runs_trend"`
	Distance7Days float64             `json:"distance_7_days"`
}

type Weight struct {
	ValueKg    xopt.Value[float64] `json:"value_kg"`
	BodyFatPct xopt.Value[float64] `json:"body_fat_pct"`
}

type Nutrition struct {
	Calories xopt.Value[float64] `json:"calories"`
	Carbs    xopt.Value[float64] `json:"carbs"`
	Protein  xopt.Value[float64] `json:"protein"`
	Fat      xopt.Value[float64] `json:"fat"`
}

func (n Nutrition) Intake() health.Intake {
	return health.Intake{
		Calories: n.Calories.OrElse(0),
		Carbs:    n.Carbs.OrElse(0),
		Protein:  n.Protein.OrElse(0),
		Fat:      n.Fat.OrElse(0),
	}
}

type Recommendation struct {
	TrainingPlan     string              `json:"training_plan"`
	NutritionPlan    string              `json:"nutrition_plan"`
	HydrationTargetL xopt.Value[float64] `json:"hydration_target_l"`
	TodayFocus       string              `json:"today_focus"`
	Motivation       string              `json:"motivation"`
	Fallback         bool                `json:"fallback"`
}

// FallbackRecommendation is shown whenever no live recommendation is available.
func FallbackRecommendation() Recommendation {
	return Recommendation{
		TrainingPlan:     "Unable to generate recommendations without complete data.",
		NutritionPlan:    "Sync your data to receive personalized nutrition guidance.",
		HydrationTargetL: xopt.Present(3.5),
		TodayFocus:       "Sync your health data to get personalized insights",
		Motivation:       "Every data point brings you closer to optimal performance.",
		Fallback:         true,
	}
}

type Medical struct {
	CholesterolMgDL xopt.Value[float64] `json:"cholesterol_mg_dl"`
	LDLMgDL         xopt.Value[float64] `json:"ldl_mg_dl"`
}

type Activities struct {
	Entries []health.ActivityEntry `json:"-"`
	Summary health.ActivitySummary `json:"summary"`
}
