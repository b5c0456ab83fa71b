package i18n

import (
	"testing"

	"github.com/saadjs/caloriecam/internal/model"
)

func TestParseLanguageMatchesRegionalTags(t *testing.T) {
	t.Parallel()

	cases := map[string]model.Language{
		"en":    model.LanguageEnglish,
		"en-US": model.LanguageEnglish,
		"ar":    model.LanguageArabic,
		"ar-EG": model.LanguageArabic,
	}
	for in, want := range cases {
		got, err := ParseLanguage(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", in, want, got)
		}
	}
	if _, err := ParseLanguage("not a tag!"); err == nil {
		t.Fatalf("expected malformed tag to fail")
	}
}

func TestRatingLabelsAreLocalizedButTokensAreNot(t *testing.T) {
	t.Parallel()

	if got := RatingLabel(model.LanguageEnglish, model.RatingUnhealthy); got != "Unhealthy" {
		t.Fatalf("unexpected english label %q", got)
	}
	if got := RatingLabel(model.LanguageArabic, model.RatingHealthy); got == string(model.RatingHealthy) {
		t.Fatalf("expected arabic label to differ from the token")
	}
}

func TestFormatSubstitutesAmount(t *testing.T) {
	t.Parallel()

	got := Format(model.LanguageEnglish, "feedback.surplus", 120)
	if got != "You went over your goal by 120 kcal." {
		t.Fatalf("unexpected message %q", got)
	}
	if T(model.LanguageEnglish, "unknown.key") != "unknown.key" {
		t.Fatalf("expected unknown keys to fall back to the key")
	}
	if Toggle(model.LanguageArabic) != model.LanguageEnglish || Toggle(model.LanguageEnglish) != model.LanguageArabic {
		t.Fatalf("toggle should flip between ar and en")
	}
}
