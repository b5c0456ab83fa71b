package service

import (
	"database/sql"
	"strings"

	"github.com/saadjs/caloriecam/internal/db"
	"github.com/saadjs/caloriecam/internal/i18n"
	"github.com/saadjs/caloriecam/internal/model"
)

func SaveLanguage(sqldb *sql.DB, lang model.Language) error {
	return db.SetValue(sqldb, KeyLanguage, string(lang))
}

// GetLanguage returns the stored UI language, defaulting to Arabic.
func GetLanguage(sqldb *sql.DB) (model.Language, error) {
	raw, ok, err := db.GetValue(sqldb, KeyLanguage)
	if err != nil {
		return "", err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return i18n.DefaultLanguage, nil
	}
	return model.Language(strings.TrimSpace(raw)), nil
}
