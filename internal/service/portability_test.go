package service_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

func seedSnapshot(t *testing.T) *service.ExportData {
	t.Helper()
	src := newTestDB(t)
	defer src.Close()

	profile := service.NewProfile(service.ProfileInput{Name: "Omar", Age: 30, HeightCm: 180, WeightKg: 82, Gender: model.GenderMale, Goal: model.GoalLoseWeight})
	if err := service.SaveProfile(src, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if err := service.SaveLanguage(src, model.LanguageEnglish); err != nil {
		t.Fatalf("save language: %v", err)
	}
	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	for _, e := range []model.AnalysisResult{meal("m1", day, model.MealLunch, 600), meal("m2", day.Add(6*time.Hour), model.MealDinner, 700)} {
		if err := service.AppendEntry(src, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if _, err := service.UpsertWeight(src, model.WeightEntry{Date: "2026-03-01", WeightKg: 82}); err != nil {
		t.Fatalf("upsert weight: %v", err)
	}
	if _, err := service.UpsertMeasurement(src, model.MeasurementsEntry{Date: "2026-03-01", WaistCm: 90, HipCm: 100}); err != nil {
		t.Fatalf("upsert measurement: %v", err)
	}
	data, err := service.ExportDataSnapshot(src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	return data
}

func TestExportImportSnapshot(t *testing.T) {
	t.Parallel()
	data := seedSnapshot(t)
	if data.Profile == nil || len(data.Entries) != 2 || len(data.Weights) != 1 || len(data.Measurements) != 1 || data.Language != model.LanguageEnglish {
		t.Fatalf("unexpected snapshot: %+v", data)
	}

	dst := newTestDB(t)
	defer dst.Close()
	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 5 || report.Conflicts != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	entries, _ := service.ListEntries(dst)
	if len(entries) != 2 || entries[0].ID != "m2" {
		t.Fatalf("expected entries newest first, got %+v", entries)
	}

	again, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeMerge})
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if again.Inserted != 0 || again.Skipped != 3 || again.Updated != 2 {
		t.Fatalf("expected idempotent merge, got %+v", again)
	}
}

func TestImportDryRunAndReplace(t *testing.T) {
	t.Parallel()
	data := seedSnapshot(t)

	dst := newTestDB(t)
	defer dst.Close()
	if err := service.AppendEntry(dst, meal("local", time.Now(), model.MealSnack, 100)); err != nil {
		t.Fatalf("append local: %v", err)
	}

	if _, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{DryRun: true}); err != nil {
		t.Fatalf("dry run: %v", err)
	}
	entries, _ := service.ListEntries(dst)
	if len(entries) != 1 {
		t.Fatalf("expected dry run to leave storage untouched, got %d entries", len(entries))
	}

	if _, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeReplace}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	entries, _ = service.ListEntries(dst)
	if len(entries) != 2 {
		t.Fatalf("expected replace to drop local entry, got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.ID == "local" {
			t.Fatalf("expected local entry removed")
		}
	}
}

func TestWriteEntriesCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	entries := []model.AnalysisResult{meal("m1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), model.MealLunch, 600)}
	if err := service.WriteEntriesCSV(&buf, entries); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 || records[0][0] != "id" || records[1][0] != "m1" || records[1][5] != "600" || records[1][2] != "Lunch" {
		t.Fatalf("unexpected csv: %+v", records)
	}
}
