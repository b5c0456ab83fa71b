package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/saadjs/caloriecam/internal/model"
)

func TestHealthRatingRejectsLocalizedValues(t *testing.T) {
	t.Parallel()

	var est model.NutritionEstimate
	err := json.Unmarshal([]byte(`{"healthRating":"صحي"}`), &est)
	if err == nil {
		t.Fatalf("expected non-English rating to fail")
	}

	if err := json.Unmarshal([]byte(`{"healthRating":"Moderate","totalCalories":420}`), &est); err != nil {
		t.Fatalf("decode estimate: %v", err)
	}
	if est.HealthRating != model.RatingModerate {
		t.Fatalf("expected Moderate, got %q", est.HealthRating)
	}
}

func TestAnalysisResultKeepsFlatWireFormat(t *testing.T) {
	t.Parallel()

	item := model.AnalysisResult{
		ID:        "abc",
		Timestamp: 1700000000000,
		MealType:  model.MealLunch,
		Source:    model.SourceManual,
		NutritionEstimate: model.NutritionEstimate{
			FoodItems:     []model.FoodItem{{Name: "Rice", Calories: 200, Weight: "150g"}},
			TotalCalories: 200,
			HealthRating:  model.RatingHealthy,
		},
	}
	b, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := string(b)
	for _, field := range []string{`"foodItems"`, `"totalCalories":200`, `"mealType":"Lunch"`, `"source":"Manual"`, `"healthRating":"Healthy"`} {
		if !strings.Contains(raw, field) {
			t.Fatalf("expected %s in %s", field, raw)
		}
	}
	if strings.Contains(raw, "imageUrl") {
		t.Fatalf("expected empty image to be omitted: %s", raw)
	}
}

func TestParseEnumsAcceptCLIAliases(t *testing.T) {
	t.Parallel()

	if g, err := model.ParseGoal("lose"); err != nil || g != model.GoalLoseWeight {
		t.Fatalf("parse goal lose: %v %q", err, g)
	}
	if g, err := model.ParseGoal("gain-muscle"); err != nil || g != model.GoalGainMuscle {
		t.Fatalf("parse goal gain: %v %q", err, g)
	}
	if m, err := model.ParseMealType("Snacks"); err != nil || m != model.MealSnack {
		t.Fatalf("parse meal snacks: %v %q", err, m)
	}
	if _, err := model.ParseGender("robot"); err == nil {
		t.Fatalf("expected invalid gender to fail")
	}
}
