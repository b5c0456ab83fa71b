package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("invalid gender %q (use male, female, or other)", value)
	}
}

type Goal string

const (
	GoalLoseWeight Goal = "Lose Weight"
	GoalMaintain   Goal = "Maintain"
	GoalGainMuscle Goal = "Gain Muscle"
)

func ParseGoal(value string) (Goal, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lose", "lose weight", "lose-weight":
		return GoalLoseWeight, nil
	case "maintain", "":
		return GoalMaintain, nil
	case "gain", "gain muscle", "gain-muscle":
		return GoalGainMuscle, nil
	default:
		return "", fmt.Errorf("invalid goal %q (use lose, maintain, or gain)", value)
	}
}

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// Name is the English language name used in model prompts.
func (l Language) Name() string {
	if l == LanguageEnglish {
		return "English"
	}
	return "Arabic"
}

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealOrder is the display order of meal groups.
var MealOrder = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func ParseMealType(value string) (MealType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "breakfast":
		return MealBreakfast, nil
	case "lunch":
		return MealLunch, nil
	case "dinner":
		return MealDinner, nil
	case "snack", "snacks":
		return MealSnack, nil
	default:
		return "", fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner, or snack)", value)
	}
}

type EntrySource string

const (
	SourceCamera EntrySource = "Camera"
	SourceManual EntrySource = "Manual"
)

// HealthRating is always one of three English tokens, whatever language the
// rest of an estimate is written in. The empty value means unrated.
type HealthRating string

const (
	RatingHealthy   HealthRating = "Healthy"
	RatingModerate  HealthRating = "Moderate"
	RatingUnhealthy HealthRating = "Unhealthy"
)

var HealthRatings = []HealthRating{RatingHealthy, RatingModerate, RatingUnhealthy}

func ParseHealthRating(value string) (HealthRating, error) {
	for _, r := range HealthRatings {
		if string(r) == value {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid health rating %q", value)
}

func (r *HealthRating) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("health rating must be a string: %w", err)
	}
	if raw == "" {
		*r = ""
		return nil
	}
	parsed, err := ParseHealthRating(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type UserProfile struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	HeightCm float64  `json:"height"`
	WeightKg float64  `json:"weight"`
	Gender   Gender   `json:"gender"`
	Goal     Goal     `json:"goal"`
	TDEE     int      `json:"tdee"`
	Language Language `json:"language,omitempty"`
}

type MacroNutrients struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

func (m MacroNutrients) Add(o MacroNutrients) MacroNutrients {
	return MacroNutrients{Protein: m.Protein + o.Protein, Carbs: m.Carbs + o.Carbs, Fats: m.Fats + o.Fats}
}

type FoodItem struct {
	Name     string         `json:"name"`
	Calories float64        `json:"calories"`
	Weight   string         `json:"weight"`
	Macros   MacroNutrients `json:"macros"`
}

// NutritionEstimate is the structured payload returned by the analysis model.
type NutritionEstimate struct {
	FoodItems     []FoodItem     `json:"foodItems"`
	TotalCalories float64        `json:"totalCalories"`
	TotalMacros   MacroNutrients `json:"totalMacros"`
	HealthRating  HealthRating   `json:"healthRating"`
	Suggestions   string         `json:"suggestions"`
}

// AnalysisResult is a logged meal. Totals are stored as given and may diverge
// from the food items after an edit.
type AnalysisResult struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	ImageURL  string      `json:"imageUrl,omitempty"`
	MealType  MealType    `json:"mealType"`
	Source    EntrySource `json:"source"`
	NutritionEstimate
}

type WeightEntry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
}

type MeasurementsEntry struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	WaistCm float64  `json:"waistCm"`
	HipCm   float64  `json:"hipCm"`
	ChestCm *float64 `json:"chestCm,omitempty"`
	NeckCm  *float64 `json:"neckCm,omitempty"`
	ThighCm *float64 `json:"thighCm,omitempty"`
	ArmCm   *float64 `json:"armCm,omitempty"`
}
