package caloriecam

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saadjs/caloriecam/internal/controller"
	"github.com/saadjs/caloriecam/internal/model"
	"github.com/saadjs/caloriecam/internal/service"
)

type stubAnalyzer struct {
	est  model.NutritionEstimate
	lang model.Language
}

func (s *stubAnalyzer) AnalyzeImage(ctx context.Context, jpeg []byte, lang model.Language) (model.NutritionEstimate, error) {
	s.lang = lang
	return s.est, nil
}

func (s *stubAnalyzer) AnalyzeText(ctx context.Context, description string, lang model.Language) (model.NutritionEstimate, error) {
	s.lang = lang
	return s.est, nil
}

var riceEstimate = model.NutritionEstimate{
	FoodItems:     []model.FoodItem{{Name: "Rice", Calories: 300, Weight: "200g", Macros: model.MacroNutrients{Protein: 6, Carbs: 62, Fats: 1}}},
	TotalCalories: 300,
	TotalMacros:   model.MacroNutrients{Protein: 6, Carbs: 62, Fats: 1},
	HealthRating:  model.RatingHealthy,
	Suggestions:   "Add vegetables.",
}

func stubAnalysis(t *testing.T) *stubAnalyzer {
	t.Helper()
	stub := &stubAnalyzer{est: riceEstimate}
	prev := analyzerFactory
	analyzerFactory = func(*sql.DB) (controller.Analyzer, error) {
		return stub, nil
	}
	t.Cleanup(func() { analyzerFactory = prev })
	return stub
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	return runWithInput(t, "", args...)
}

// runWithInput executes the root command with stdin set to input. Flag
// variables keep their values between executions, so the ones read without
// Changed are reset first.
func runWithInput(t *testing.T, input string, args ...string) string {
	t.Helper()
	langFlag, logDate, logMeal, logYes = "", "", "", false
	listDate = ""
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("caloriecam %s: %v\n%s", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

func TestRootHelp(t *testing.T) {
	out := run(t, "--help")
	if !strings.Contains(out, "caloriecam") {
		t.Fatalf("expected help output, got %q", out)
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	for i := 0; i < 2; i++ {
		run(t, "--db", path, "init")
	}
}

func TestProfileSetComputesGoal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	out := run(t, "--db", path, "profile", "set", "--name", "Sara", "--age", "25", "--height", "170", "--weight", "70", "--gender", "male", "--goal", "maintain")
	if !strings.Contains(out, "Daily goal: 1971 kcal") {
		t.Fatalf("unexpected profile output: %q", out)
	}

	out = run(t, "--db", path, "profile", "show", "--json")
	var p model.UserProfile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode profile json: %v\n%s", err, out)
	}
	if p.Name != "Sara" || p.TDEE != 1971 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestLogTextSavesEntry(t *testing.T) {
	stubAnalysis(t)
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	run(t, "--db", path, "profile", "set", "--name", "Sara", "--force")

	out := run(t, "--db", path, "log", "text", "a bowl of rice", "--meal", "lunch", "--date", "2026-03-10", "--yes")
	if !strings.Contains(out, "Logged Rice") {
		t.Fatalf("unexpected log output: %q", out)
	}

	out = run(t, "--db", path, "entry", "list", "--date", "2026-03-10", "--json")
	var entries []model.AnalysisResult
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v\n%s", err, out)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	e := entries[0]
	if e.MealType != model.MealLunch || e.Source != model.SourceManual || e.TotalCalories != 300 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if service.DateKey(service.EntryTime(e)) != "2026-03-10" {
		t.Fatalf("expected entry on 2026-03-10, got %s", service.EntryTime(e))
	}
}

func TestLangToggleFlipsStoredLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	if out := run(t, "--db", path, "lang", "show"); strings.TrimSpace(out) != "ar" {
		t.Fatalf("expected default ar, got %q", out)
	}
	run(t, "--db", path, "lang", "toggle")
	if out := run(t, "--db", path, "lang", "show"); strings.TrimSpace(out) != "en" {
		t.Fatalf("expected en after toggle, got %q", out)
	}
}

func TestBodyWeightAddSyncsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	run(t, "--db", path, "profile", "set", "--name", "Sara", "--weight", "70", "--force")
	run(t, "--db", path, "body", "weight", "add", "--date", "2026-03-10", "--kg", "68.5")

	out := run(t, "--db", path, "profile", "show", "--json")
	var p model.UserProfile
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode profile json: %v\n%s", err, out)
	}
	if p.WeightKg != 68.5 {
		t.Fatalf("expected synced weight 68.5, got %v", p.WeightKg)
	}
}

func TestExportWritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caloriecam.db")
	out := filepath.Join(dir, "export.json")
	run(t, "--db", path, "init")
	run(t, "--db", path, "export", "--format", "json", "--out", out)

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var data service.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if data.Version != 1 || data.Language != model.LanguageArabic {
		t.Fatalf("unexpected export: %+v", data)
	}
}

func TestDoctorPassesOnFreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	run(t, "--db", path, "init")
	out := run(t, "--db", path, "doctor")
	if !strings.Contains(out, "Duplicate body dates: 0") {
		t.Fatalf("unexpected doctor output: %q", out)
	}
}

func TestLangFlagDrivesAnalysisLanguage(t *testing.T) {
	stub := stubAnalysis(t)
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	run(t, "--db", path, "profile", "set", "--name", "Sara", "--force")

	out := run(t, "--db", path, "--lang", "en", "log", "text", "rice", "--meal", "lunch", "--yes")
	if !strings.Contains(out, "as Lunch") {
		t.Fatalf("expected English output, got %q", out)
	}
	if stub.lang != model.LanguageEnglish {
		t.Fatalf("expected analysis requested in en, got %q", stub.lang)
	}
	if out := run(t, "--db", path, "lang", "show"); strings.TrimSpace(out) != "ar" {
		t.Fatalf("expected --lang not to persist, got %q", out)
	}
}

func TestLogTextAsksForMealType(t *testing.T) {
	stubAnalysis(t)
	path := filepath.Join(t.TempDir(), "caloriecam.db")
	run(t, "--db", path, "profile", "set", "--name", "Sara", "--force")

	out := runWithInput(t, "dinner\n", "--db", path, "--lang", "en", "log", "text", "rice", "--date", "2026-03-11")
	if !strings.Contains(out, "as Dinner") {
		t.Fatalf("expected meal saved as dinner, got %q", out)
	}

	out = runWithInput(t, "\n", "--db", path, "log", "text", "rice", "--date", "2026-03-12")
	if !strings.Contains(out, "Discarded") {
		t.Fatalf("expected empty answer to discard, got %q", out)
	}

	out = run(t, "--db", path, "entry", "list", "--json")
	var entries []model.AnalysisResult
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode entries: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].MealType != model.MealDinner {
		t.Fatalf("expected one dinner entry, got %+v", entries)
	}
}
