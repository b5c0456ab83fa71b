package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/caloriecam/internal/model"
)

// ListWeights returns weight entries newest date first.
func ListWeights(db *sql.DB) ([]model.WeightEntry, error) {
	items := make([]model.WeightEntry, 0)
	if _, err := loadSlot(db, KeyWeights, &items); err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	if items == nil {
		items = make([]model.WeightEntry, 0)
	}
	return items, nil
}

// ListMeasurements returns measurement entries newest date first.
func ListMeasurements(db *sql.DB) ([]model.MeasurementsEntry, error) {
	items := make([]model.MeasurementsEntry, 0)
	if _, err := loadSlot(db, KeyMeasurements, &items); err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	if items == nil {
		items = make([]model.MeasurementsEntry, 0)
	}
	return items, nil
}

// UpsertWeight keeps at most one weight per date. An existing record for the
// date is replaced in place, keeping its id.
func UpsertWeight(db *sql.DB, entry model.WeightEntry) (model.WeightEntry, error) {
	entry.Date = strings.TrimSpace(entry.Date)
	if err := validateDate(entry.Date); err != nil {
		return entry, err
	}
	if err := validatePositiveFloat("weight", entry.WeightKg); err != nil {
		return entry, err
	}
	items, err := ListWeights(db)
	if err != nil {
		return entry, err
	}
	found := false
	for i := range items {
		if items[i].Date == entry.Date {
			if entry.ID == "" {
				entry.ID = items[i].ID
			}
			items[i] = entry
			found = true
			break
		}
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if !found {
		items = append([]model.WeightEntry{entry}, items...)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	if err := saveSlot(db, KeyWeights, items); err != nil {
		return entry, fmt.Errorf("write weights: %w", err)
	}
	return entry, nil
}

// UpsertMeasurement keeps at most one measurement set per date.
func UpsertMeasurement(db *sql.DB, entry model.MeasurementsEntry) (model.MeasurementsEntry, error) {
	entry.Date = strings.TrimSpace(entry.Date)
	if err := validateDate(entry.Date); err != nil {
		return entry, err
	}
	if err := validatePositiveFloat("waist", entry.WaistCm); err != nil {
		return entry, err
	}
	if err := validatePositiveFloat("hip", entry.HipCm); err != nil {
		return entry, err
	}
	for name, v := range map[string]*float64{"chest": entry.ChestCm, "neck": entry.NeckCm, "thigh": entry.ThighCm, "arm": entry.ArmCm} {
		if v != nil {
			if err := validateNonNegativeFloat(name, *v); err != nil {
				return entry, err
			}
		}
	}
	items, err := ListMeasurements(db)
	if err != nil {
		return entry, err
	}
	found := false
	for i := range items {
		if items[i].Date == entry.Date {
			if entry.ID == "" {
				entry.ID = items[i].ID
			}
			items[i] = entry
			found = true
			break
		}
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if !found {
		items = append([]model.MeasurementsEntry{entry}, items...)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	if err := saveSlot(db, KeyMeasurements, items); err != nil {
		return entry, fmt.Errorf("write measurements: %w", err)
	}
	return entry, nil
}

// LatestWeight returns the most recent weight entry, if any.
func LatestWeight(db *sql.DB) (*model.WeightEntry, error) {
	items, err := ListWeights(db)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

// LatestMeasurement returns the most recent measurement entry, if any.
func LatestMeasurement(db *sql.DB) (*model.MeasurementsEntry, error) {
	items, err := ListMeasurements(db)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}
