package service_test

import (
	"testing"

	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

func TestUpsertWeightReplacesSameDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	first, err := service.UpsertWeight(db, model.WeightEntry{Date: "2026-02-20", WeightKg: 80})
	if err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, err := service.UpsertWeight(db, model.WeightEntry{Date: "2026-02-22", WeightKg: 79}); err != nil {
		t.Fatalf("upsert later: %v", err)
	}
	if _, err := service.UpsertWeight(db, model.WeightEntry{Date: "2026-02-20", WeightKg: 78.5}); err != nil {
		t.Fatalf("upsert same date: %v", err)
	}

	items, err := service.ListWeights(db)
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 weights, got %d", len(items))
	}
	if items[0].Date != "2026-02-22" || items[1].Date != "2026-02-20" {
		t.Fatalf("expected newest date first, got %+v", items)
	}
	if items[1].WeightKg != 78.5 || items[1].ID != first.ID {
		t.Fatalf("expected same-date record replaced in place, got %+v", items[1])
	}

	latest, err := service.LatestWeight(db)
	if err != nil || latest == nil || latest.Date != "2026-02-22" {
		t.Fatalf("expected latest weight, got %+v err=%v", latest, err)
	}
}

func TestUpsertWeightValidates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.UpsertWeight(db, model.WeightEntry{Date: "20/02/2026", WeightKg: 80}); err == nil {
		t.Fatalf("expected invalid date to fail")
	}
	if _, err := service.UpsertWeight(db, model.WeightEntry{Date: "2026-02-20", WeightKg: 0}); err == nil {
		t.Fatalf("expected zero weight to fail")
	}
}

func TestUpsertMeasurementKeepsOptionalFields(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.UpsertMeasurement(db, model.MeasurementsEntry{Date: "2026-02-20", WaistCm: 80, HipCm: 100}); err != nil {
		t.Fatalf("upsert measurement: %v", err)
	}
	if _, err := service.UpsertMeasurement(db, model.MeasurementsEntry{Date: "2026-02-20", WaistCm: 78, HipCm: 99, ChestCm: floatPtr(95)}); err != nil {
		t.Fatalf("upsert same date: %v", err)
	}
	items, err := service.ListMeasurements(db)
	if err != nil {
		t.Fatalf("list measurements: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one measurement per date, got %d", len(items))
	}
	if items[0].WaistCm != 78 || items[0].ChestCm == nil || *items[0].ChestCm != 95 || items[0].NeckCm != nil {
		t.Fatalf("unexpected measurement: %+v", items[0])
	}

	if _, err := service.UpsertMeasurement(db, model.MeasurementsEntry{Date: "2026-02-21", WaistCm: 80}); err == nil {
		t.Fatalf("expected missing hip to fail")
	}
}
