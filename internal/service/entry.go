package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/model"
)

// EditEntryInput carries the fields of the meal edit form.
type EditEntryInput struct {
	Name     string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
	MealType model.MealType
	Time     time.Time
}

// NewEntryID returns a fresh entry identifier.
func NewEntryID() string {
	return uuid.NewString()
}

// ListEntries returns every logged meal, newest first as stored.
func ListEntries(db *sql.DB) ([]model.AnalysisResult, error) {
	items := make([]model.AnalysisResult, 0)
	if _, err := loadSlot(db, KeyHistory, &items); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if items == nil {
		items = make([]model.AnalysisResult, 0)
	}
	return items, nil
}

func writeEntries(db *sql.DB, items []model.AnalysisResult) error {
	if err := saveSlot(db, KeyHistory, items); err != nil {
		return fmt.Errorf("write entries: %w", err)
	}
	return nil
}

// AppendEntry prepends item to the history.
func AppendEntry(db *sql.DB, item model.AnalysisResult) error {
	if strings.TrimSpace(item.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	items, err := ListEntries(db)
	if err != nil {
		return err
	}
	items = append([]model.AnalysisResult{item}, items...)
	return writeEntries(db, items)
}

// UpdateEntry replaces the record with the same id. A missing id is a no-op
// and reports false.
func UpdateEntry(db *sql.DB, item model.AnalysisResult) (bool, error) {
	items, err := ListEntries(db)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return true, writeEntries(db, items)
		}
	}
	return false, nil
}

// DeleteEntry removes the record with id. Unknown ids are ignored.
func DeleteEntry(db *sql.DB, id string) error {
	items, err := ListEntries(db)
	if err != nil {
		return err
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return nil
	}
	return writeEntries(db, out)
}

// DuplicateEntry clones the record with id under a fresh id and timestamp and
// prepends the copy. It returns nil when the source does not exist.
func DuplicateEntry(db *sql.DB, id string, ts time.Time) (*model.AnalysisResult, error) {
	items, err := ListEntries(db)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID != id {
			continue
		}
		clone := it
		clone.ID = NewEntryID()
		clone.Timestamp = ts.UnixMilli()
		clone.FoodItems = append([]model.FoodItem(nil), it.FoodItems...)
		items = append([]model.AnalysisResult{clone}, items...)
		if err := writeEntries(db, items); err != nil {
			return nil, err
		}
		return &clone, nil
	}
	return nil, nil
}

func EntryByID(db *sql.DB, id string) (*model.AnalysisResult, error) {
	items, err := ListEntries(db)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

// ClearEntries deletes the whole meal history.
func ClearEntries(sqldb *sql.DB) error {
	if err := db.DeleteValue(sqldb, KeyHistory); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// ApplyEdit returns item with the edit form applied. The first food item is
// renamed, or a single item is created when there are none. Totals are
// overridden as entered and food items are not rescaled.
func ApplyEdit(item model.AnalysisResult, in EditEntryInput) (model.AnalysisResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return item, fmt.Errorf("entry name is required")
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"calories", in.Calories},
		{"protein", in.ProteinG},
		{"carbs", in.CarbsG},
		{"fats", in.FatG},
	} {
		if err := validateNonNegativeFloat(v.name, v.value); err != nil {
			return item, err
		}
	}
	macros := model.MacroNutrients{Protein: in.ProteinG, Carbs: in.CarbsG, Fats: in.FatG}

	items := append([]model.FoodItem(nil), item.FoodItems...)
	if len(items) > 0 {
		items[0].Name = name
	} else {
		items = []model.FoodItem{{Name: name, Calories: in.Calories, Weight: "N/A", Macros: macros}}
	}
	item.FoodItems = items
	item.TotalCalories = in.Calories
	item.TotalMacros = macros
	if in.MealType != "" {
		item.MealType = in.MealType
	}
	if !in.Time.IsZero() {
		item.Timestamp = in.Time.UnixMilli()
	}
	return item, nil
}

// EntryTime returns the entry timestamp as local time.
func EntryTime(item model.AnalysisResult) time.Time {
	return time.UnixMilli(item.Timestamp).In(time.Local)
}
