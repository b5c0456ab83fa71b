package service

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/model"
)

const exportVersion = 1

type ExportData struct {
	Version      int                       `json:"version"`
	ExportedAt   time.Time                 `json:"exported_at"`
	Profile      *model.UserProfile        `json:"profile,omitempty"`
	Language     model.Language            `json:"language,omitempty"`
	Entries      []model.AnalysisResult    `json:"entries"`
	Weights      []model.WeightEntry       `json:"weights"`
	Measurements []model.MeasurementsEntry `json:"measurements"`
}

type ImportMode string

const (
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(sqldb *sql.DB) (*ExportData, error) {
	out := &ExportData{Version: exportVersion, ExportedAt: time.Now().UTC()}
	profile, err := GetProfile(sqldb)
	if err != nil {
		return nil, fmt.Errorf("export profile: %w", err)
	}
	out.Profile = profile
	if out.Language, err = GetLanguage(sqldb); err != nil {
		return nil, fmt.Errorf("export language: %w", err)
	}
	if out.Entries, err = ListEntries(sqldb); err != nil {
		return nil, err
	}
	if out.Weights, err = ListWeights(sqldb); err != nil {
		return nil, err
	}
	if out.Measurements, err = ListMeasurements(sqldb); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	if mode == ImportModeReplace {
		return ImportModeReplace
	}
	return ImportModeMerge
}

// ImportDataSnapshot writes data into storage in a single transaction. Merge
// mode keeps existing entries with the same id and lets imported body metrics
// win for the same date. Replace mode clears every slot first.
func ImportDataSnapshot(sqldb *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	mode := normalizeImportMode(opts.Mode)

	tx, err := sqldb.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace {
		for _, key := range Slots {
			if err := db.DeleteValue(tx, key); err != nil {
				return report, err
			}
		}
	}

	if data.Profile != nil {
		var existing model.UserProfile
		found, err := loadSlot(tx, KeyProfile, &existing)
		if err != nil {
			return report, err
		}
		switch {
		case !found:
			report.Inserted++
			if err := saveSlot(tx, KeyProfile, data.Profile); err != nil {
				return report, err
			}
		case existing != *data.Profile:
			report.Conflicts++
			report.Warnings = append(report.Warnings, "kept existing profile")
		default:
			report.Skipped++
		}
	}
	if data.Language != "" {
		if _, found, err := db.GetValue(tx, KeyLanguage); err != nil {
			return report, err
		} else if !found {
			if err := db.SetValue(tx, KeyLanguage, string(data.Language)); err != nil {
				return report, err
			}
		}
	}

	entries := make([]model.AnalysisResult, 0)
	if _, err := loadSlot(tx, KeyHistory, &entries); err != nil {
		return report, err
	}
	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.ID] = true
	}
	for _, e := range data.Entries {
		if strings.TrimSpace(e.ID) == "" {
			report.Skipped++
			report.Warnings = append(report.Warnings, "skipped entry without id")
			continue
		}
		if seen[e.ID] {
			report.Skipped++
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
		report.Inserted++
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp > entries[j].Timestamp })
	if err := saveSlot(tx, KeyHistory, entries); err != nil {
		return report, err
	}

	weights := make([]model.WeightEntry, 0)
	if _, err := loadSlot(tx, KeyWeights, &weights); err != nil {
		return report, err
	}
	for _, w := range data.Weights {
		if validateDate(w.Date) != nil || w.WeightKg <= 0 {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped invalid weight for %q", w.Date))
			continue
		}
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		replaced := false
		for i := range weights {
			if weights[i].Date == w.Date {
				weights[i] = w
				replaced = true
				break
			}
		}
		if replaced {
			report.Updated++
		} else {
			weights = append(weights, w)
			report.Inserted++
		}
	}
	sort.SliceStable(weights, func(i, j int) bool { return weights[i].Date > weights[j].Date })
	if err := saveSlot(tx, KeyWeights, weights); err != nil {
		return report, err
	}

	measurements := make([]model.MeasurementsEntry, 0)
	if _, err := loadSlot(tx, KeyMeasurements, &measurements); err != nil {
		return report, err
	}
	for _, m := range data.Measurements {
		if validateDate(m.Date) != nil || m.WaistCm <= 0 || m.HipCm <= 0 {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped invalid measurements for %q", m.Date))
			continue
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		replaced := false
		for i := range measurements {
			if measurements[i].Date == m.Date {
				measurements[i] = m
				replaced = true
				break
			}
		}
		if replaced {
			report.Updated++
		} else {
			measurements = append(measurements, m)
			report.Inserted++
		}
	}
	sort.SliceStable(measurements, func(i, j int) bool { return measurements[i].Date > measurements[j].Date })
	if err := saveSlot(tx, KeyMeasurements, measurements); err != nil {
		return report, err
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

var entriesCSVHeader = []string{"id", "timestamp", "meal_type", "source", "foods", "calories", "protein_g", "carbs_g", "fat_g", "health_rating"}

// WriteEntriesCSV writes one row per logged meal.
func WriteEntriesCSV(w io.Writer, entries []model.AnalysisResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entriesCSVHeader); err != nil {
		return fmt.Errorf("write export csv header: %w", err)
	}
	for _, e := range entries {
		names := make([]string, 0, len(e.FoodItems))
		for _, f := range e.FoodItems {
			names = append(names, f.Name)
		}
		record := []string{
			e.ID,
			EntryTime(e).Format(time.RFC3339),
			string(e.MealType),
			string(e.Source),
			strings.Join(names, "; "),
			strconv.FormatFloat(e.TotalCalories, 'f', -1, 64),
			strconv.FormatFloat(e.TotalMacros.Protein, 'f', -1, 64),
			strconv.FormatFloat(e.TotalMacros.Carbs, 'f', -1, 64),
			strconv.FormatFloat(e.TotalMacros.Fats, 'f', -1, 64),
			string(e.HealthRating),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush export csv: %w", err)
	}
	return nil
}
