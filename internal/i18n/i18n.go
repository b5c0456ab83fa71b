package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/saadjs/caloriecam/internal/model"
)

const DefaultLanguage = model.LanguageArabic

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// ParseLanguage maps any BCP 47 tag onto a supported UI language. Tags such
// as "en-US" or "ar-EG" resolve to their base language.
func ParseLanguage(value string) (model.Language, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("language is required")
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", value, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q (use ar or en)", value)
	}
	if idx == 1 {
		return model.LanguageEnglish, nil
	}
	return model.LanguageArabic, nil
}

func Toggle(l model.Language) model.Language {
	if l == model.LanguageArabic {
		return model.LanguageEnglish
	}
	return model.LanguageArabic
}

// T returns the label for key in lang, falling back to English and then to
// the key itself.
func T(lang model.Language, key string) string {
	if table, ok := labels[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if v, ok := labels[model.LanguageEnglish][key]; ok {
		return v
	}
	return key
}

func Format(lang model.Language, key string, amount int) string {
	return strings.ReplaceAll(T(lang, key), "{amount}", fmt.Sprintf("%d", amount))
}

func RatingLabel(lang model.Language, r model.HealthRating) string {
	return T(lang, "rating."+strings.ToLower(string(r)))
}

func MealLabel(lang model.Language, m model.MealType) string {
	return T(lang, "meal."+strings.ToLower(string(m)))
}
