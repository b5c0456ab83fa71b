package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

const (
	ConfigGeminiModel   = "gemini_model"
	ConfigGeminiBaseURL = "gemini_base_url"
	ConfigS3Bucket      = "s3_bucket"
	ConfigS3Prefix      = "s3_prefix"
)

var configKeys = []string{ConfigGeminiModel, ConfigGeminiBaseURL, ConfigS3Bucket, ConfigS3Prefix}

// ConfigKeys returns the supported app_config keys in sorted order.
func ConfigKeys() []string {
	out := append([]string(nil), configKeys...)
	sort.Strings(out)
	return out
}

func normalizeConfigKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", fmt.Errorf("config key is required")
	}
	for _, k := range configKeys {
		if k == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(ConfigKeys(), ", "))
}

func SetConfig(db *sql.DB, key, value string) error {
	key, err := normalizeConfigKey(key)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key, err := normalizeConfigKey(key)
	if err != nil {
		return "", false, err
	}
	var value string
	err = db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ResolveSetting picks the first non-empty value of flag, env, stored
// app_config, then fallback.
func ResolveSetting(db *sql.DB, key, flag, env, fallback string) (string, error) {
	if v := strings.TrimSpace(flag); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(env); v != "" {
		return v, nil
	}
	if db != nil {
		v, ok, err := GetConfig(db, key)
		if err != nil {
			return "", err
		}
		if ok && v != "" {
			return v, nil
		}
	}
	return fallback, nil
}
