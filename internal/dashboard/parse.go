package dashboard

import (
	"github.com/tidwall/gjson"

	"github.com/garrettladley/healthmesh/internal/envelope"
	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

func parseWearable(raw []byte) xopt.Value[Wearable] {
	obj, ok := envelope.Object(raw).Get()
	if !ok {
		return xopt.Missing[Wearable]()
	}

	w := Wearable{
		Vitals: health.Vitals{
			HRV:        envelope.Field(obj, "hrv"),
			RestingHR:  envelope.Field(obj, "restingHeartRate"),
			SleepHours: health.SleepHours(envelope.Field(obj, "measurableAsleepDuration")),
		},
		DistanceKm:   envelope.Field(obj, "distance"),
		HRVTrend:     numbers(obj.Get("last7hrv")),
		RestingTrend: numbers(obj.Get("last7rhr")),
		SleepTrend:   numbers(obj.Get("last7sleep")),
		RunsTrend:    numbers(obj.Get("last7runs.#.distance_km")),
	}
	for _, km := range w.RunsTrend {
		w.Distance7Days += km
	}
	return xopt.Present(w)
}

func parseWeight(raw []byte) xopt.Value[Weight] {
	obj, ok := envelope.Object(raw).Get()
	if !ok {
		return xopt.Missing[Weight]()
	}
	return xopt.Present(Weight{
		ValueKg:    envelope.Field(obj, "value"),
		BodyFatPct: envelope.Field(obj, "bodyfat"),
	})
}

func parseNutrition(raw []byte) xopt.Value[Nutrition] {
	obj, ok := envelope.Object(raw).Get()
	if !ok {
		return xopt.Missing[Nutrition]()
	}
	return xopt.Present(Nutrition{
		Calories: envelope.Field(obj, "calories"),
		Carbs:    envelope.Field(obj, "carbs"),
		Protein:  envelope.Field(obj, "protein"),
		Fat:      envelope.Field(obj, "fat"),
	})
}

// parseRecommendation requires a non-empty "result" object.
func parseRecommendation(raw []byte) xopt.Value[Recommendation] {
	obj, ok := envelope.Object(raw).Get()
	if !ok {
		return xopt.Missing[Recommendation]()
	}
	result, ok := envelope.Object([]byte(obj.Get("result").Raw)).Get()
	if !ok {
		return xopt.Missing[Recommendation]()
	}
	return xopt.Present(Recommendation{
		TrainingPlan:     result.Get("training_plan").String(),
		NutritionPlan:    result.Get("nutrition_plan").String(),
		HydrationTargetL: envelope.Field(result, "hydration_target_l"),
		TodayFocus:       result.Get("today_focus").String(),
		Motivation:       result.Get("motivation").String(),
	})
}

func parseMedical(raw []byte) xopt.Value[Medical] {
	obj, ok := envelope.Object(raw).Get()
	if !ok {
		return xopt.Missing[Medical]()
	}
	return xopt.Present(Medical{
		CholesterolMgDL: envelope.Field(obj, "cholesterol"),
		LDLMgDL:         envelope.Field(obj, "ldl"),
	})
}

// parseCaloriesTrend keeps points with a numeric calorie value.
func parseCaloriesTrend(raw []byte) health.TrendSeries {
	items := envelope.Items(raw)
	series := make(health.TrendSeries, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		kcal, ok := envelope.Field(item, "calories").Get()
		if !ok {
			continue
		}
		series = append(series, health.TrendPoint{
			Date:  item.Get("date").String(),
			Value: kcal,
		})
	}
	return series
}

func parseActivities(raw []byte) Activities {
	items := envelope.Items(raw)
	entries := make([]health.ActivityEntry, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		entries = append(entries, health.ActivityEntry{
			Date:            item.Get("date").String(),
			Type:            envelope.String(item.Get("activity_type")),
			DurationMinutes: envelope.Field(item, "duration"),
			Calories:        envelope.Field(item, "calories"),
		})
	}
	return Activities{
		Entries: entries,
		Summary: health.AggregateActivities(entries),
	}
}

func numbers(r gjson.Result) []float64 {
	if !r.IsArray() {
		return []float64{}
	}
	out := make([]float64, 0, len(r.Array()))
	for _, v := range r.Array() {
		if n, ok := envelope.Number(v).Get(); ok {
			out = append(out, n)
		}
	}
	return out
}
