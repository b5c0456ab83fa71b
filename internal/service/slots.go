package service

import (
	"encoding/json"
	"fmt"

	"github.com/saadjs/caloriecam/internal/db"
)

const (
	KeyProfile      = "calorie_cam_profile"
	KeyHistory      = "calorie_cam_history"
	KeyLanguage     = "calorie_cam_language"
	KeyWeights      = "calorie_cam_weight_history"
	KeyMeasurements = "calorie_cam_measurements_history"
)

// Slots lists every storage slot owned by the app.
var Slots = []string{KeyProfile, KeyHistory, KeyLanguage, KeyWeights, KeyMeasurements}

func loadSlot(q db.Querier, key string, dst any) (bool, error) {
	raw, ok, err := db.GetValue(q, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveSlot(q db.Querier, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return db.SetValue(q, key, string(b))
}
