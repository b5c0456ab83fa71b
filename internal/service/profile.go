package service

import (
	"database/sql"
	"math"
	"strings"

	"github.com/saadjs/caloriecam/internal/model"
)

type ProfileInput struct {
	Name     string
	Age      int
	HeightCm float64
	WeightKg float64
	Gender   model.Gender
	Goal     model.Goal
	Language model.Language
}

func SaveProfile(db *sql.DB, p model.UserProfile) error {
	return saveSlot(db, KeyProfile, p)
}

// GetProfile returns nil without error when onboarding has not completed.
func GetProfile(db *sql.DB) (*model.UserProfile, error) {
	var p model.UserProfile
	ok, err := loadSlot(db, KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// CalculateTDEE returns the daily calorie target for the profile, adjusted
// for the goal. Missing weight, height, or age fall back to 70 kg, 170 cm,
// and 25 years.
func CalculateTDEE(in ProfileInput) int {
	w := in.WeightKg
	if w == 0 {
		w = 70
	}
	h := in.HeightCm
	if h == 0 {
		h = 170
	}
	a := in.Age
	if a == 0 {
		a = 25
	}
	bmr := 10*w + 6.25*h - 5*float64(a)
	if in.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	tdee := bmr * 1.2
	switch in.Goal {
	case model.GoalLoseWeight:
		return int(math.Round(tdee - 500))
	case model.GoalGainMuscle:
		return int(math.Round(tdee + 300))
	default:
		return int(math.Round(tdee))
	}
}

// NewProfile builds a profile with a TDEE frozen at creation time. Later
// weight changes do not recompute it.
func NewProfile(in ProfileInput) model.UserProfile {
	if in.Gender == "" {
		in.Gender = model.GenderMale
	}
	if in.Goal == "" {
		in.Goal = model.GoalMaintain
	}
	return model.UserProfile{
		Name:     strings.TrimSpace(in.Name),
		Age:      in.Age,
		HeightCm: in.HeightCm,
		WeightKg: in.WeightKg,
		Gender:   in.Gender,
		Goal:     in.Goal,
		TDEE:     CalculateTDEE(in),
		Language: in.Language,
	}
}
