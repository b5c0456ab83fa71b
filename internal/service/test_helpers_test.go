package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func floatPtr(v float64) *float64 {
	return &v
}

func meal(id string, at time.Time, mt model.MealType, kcal float64) model.AnalysisResult {
	return model.AnalysisResult{
		ID:        id,
		Timestamp: at.UnixMilli(),
		MealType:  mt,
		Source:    model.SourceManual,
		NutritionEstimate: model.NutritionEstimate{
			FoodItems:     []model.FoodItem{{Name: id, Calories: kcal, Weight: "100g"}},
			TotalCalories: kcal,
			TotalMacros:   model.MacroNutrients{Protein: kcal / 20, Carbs: kcal / 10, Fats: kcal / 40},
			HealthRating:  model.RatingModerate,
		},
	}
}
