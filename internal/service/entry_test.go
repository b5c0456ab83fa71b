package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

func TestEntryStoreLifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	items, err := service.ListEntries(db)
	if err != nil {
		t.Fatalf("list empty entries: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no entries, got %d", len(items))
	}

	day := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	if err := service.AppendEntry(db, meal("a", day, model.MealLunch, 500)); err != nil {
		t.Fatalf("append a: %v", err)
	}
	if err := service.AppendEntry(db, meal("b", day.Add(time.Hour), model.MealSnack, 200)); err != nil {
		t.Fatalf("append b: %v", err)
	}
	items, _ = service.ListEntries(db)
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("expected newest first, got %+v", items)
	}

	updated := items[1]
	updated.TotalCalories = 650
	ok, err := service.UpdateEntry(db, updated)
	if err != nil || !ok {
		t.Fatalf("update a: ok=%v err=%v", ok, err)
	}
	ok, err = service.UpdateEntry(db, meal("missing", day, model.MealLunch, 1))
	if err != nil || ok {
		t.Fatalf("expected update of unknown id to be a no-op: ok=%v err=%v", ok, err)
	}

	got, err := service.EntryByID(db, "a")
	if err != nil || got == nil || got.TotalCalories != 650 {
		t.Fatalf("expected updated entry, got %+v err=%v", got, err)
	}

	if err := service.DeleteEntry(db, "missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if err := service.DeleteEntry(db, "b"); err != nil {
		t.Fatalf("delete b: %v", err)
	}
	items, _ = service.ListEntries(db)
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("expected only a to remain, got %+v", items)
	}

	if err := service.ClearEntries(db); err != nil {
		t.Fatalf("clear entries: %v", err)
	}
	items, _ = service.ListEntries(db)
	if len(items) != 0 {
		t.Fatalf("expected history cleared, got %d", len(items))
	}
}

func TestDuplicateEntryUsesFreshIDAndTimestamp(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	src := meal("orig", time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local), model.MealBreakfast, 300)
	if err := service.AppendEntry(db, src); err != nil {
		t.Fatalf("append: %v", err)
	}

	ts := time.Date(2026, 3, 5, 9, 30, 0, 0, time.Local)
	dup, err := service.DuplicateEntry(db, "orig", ts)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup == nil {
		t.Fatalf("expected duplicate")
	}
	if dup.ID == "orig" || dup.ID == "" {
		t.Fatalf("expected fresh id, got %q", dup.ID)
	}
	if dup.Timestamp != ts.UnixMilli() || dup.TotalCalories != 300 || dup.MealType != model.MealBreakfast {
		t.Fatalf("unexpected duplicate: %+v", dup)
	}
	items, _ := service.ListEntries(db)
	if len(items) != 2 || items[0].ID != dup.ID {
		t.Fatalf("expected duplicate prepended, got %+v", items)
	}

	missing, err := service.DuplicateEntry(db, "nope", ts)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown source, got %+v err=%v", missing, err)
	}
}

func TestApplyEditRenamesFirstItemAndOverridesTotals(t *testing.T) {
	t.Parallel()

	item := meal("x", time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local), model.MealLunch, 400)
	item.FoodItems = append(item.FoodItems, model.FoodItem{Name: "Salad", Calories: 50, Weight: "80g"})
	when := time.Date(2026, 3, 1, 19, 0, 0, 0, time.Local)

	out, err := service.ApplyEdit(item, service.EditEntryInput{
		Name:     "Kabsa",
		Calories: 700,
		ProteinG: 30,
		CarbsG:   90,
		FatG:     20,
		MealType: model.MealDinner,
		Time:     when,
	})
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	if out.FoodItems[0].Name != "Kabsa" || out.FoodItems[0].Calories != 400 || len(out.FoodItems) != 2 {
		t.Fatalf("expected first item renamed without rescaling, got %+v", out.FoodItems)
	}
	if out.TotalCalories != 700 || out.TotalMacros.Protein != 30 || out.MealType != model.MealDinner || out.Timestamp != when.UnixMilli() {
		t.Fatalf("unexpected edited totals: %+v", out)
	}
	if item.FoodItems[0].Name == "Kabsa" {
		t.Fatalf("expected source item to stay untouched")
	}

	empty := model.AnalysisResult{ID: "y"}
	out, err = service.ApplyEdit(empty, service.EditEntryInput{Name: "Tea", Calories: 5})
	if err != nil {
		t.Fatalf("apply edit to empty item: %v", err)
	}
	if len(out.FoodItems) != 1 || out.FoodItems[0].Weight != "N/A" || out.FoodItems[0].Calories != 5 {
		t.Fatalf("expected single synthesized item, got %+v", out.FoodItems)
	}

	if _, err := service.ApplyEdit(item, service.EditEntryInput{Name: " "}); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	if _, err := service.ApplyEdit(item, service.EditEntryInput{Name: "x", Calories: -1}); err == nil {
		t.Fatalf("expected negative calories to fail")
	}
}
