package service_test

import (
	"testing"

	"github.com/saadjs/caloriecam/internal/service"
)

func TestConfigSetGetAndResolve(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, "GEMINI_MODEL", " gemini-2.5-flash "); err != nil {
		t.Fatalf("set config: %v", err)
	}
	v, ok, err := service.GetConfig(db, service.ConfigGeminiModel)
	if err != nil || !ok || v != "gemini-2.5-flash" {
		t.Fatalf("unexpected config value %q ok=%v err=%v", v, ok, err)
	}
	if err := service.SetConfig(db, "barcode_provider", "x"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}

	got, err := service.ResolveSetting(db, service.ConfigGeminiModel, "", "", "default")
	if err != nil || got != "gemini-2.5-flash" {
		t.Fatalf("expected stored value, got %q err=%v", got, err)
	}
	got, _ = service.ResolveSetting(db, service.ConfigGeminiModel, "", "env-model", "default")
	if got != "env-model" {
		t.Fatalf("expected env to win over stored config, got %q", got)
	}
	got, _ = service.ResolveSetting(db, service.ConfigGeminiModel, "flag-model", "env-model", "default")
	if got != "flag-model" {
		t.Fatalf("expected flag to win, got %q", got)
	}
	got, _ = service.ResolveSetting(db, service.ConfigS3Prefix, "", "", "backups/")
	if got != "backups/" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
