package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvGeminiAPIKey  = "GEMINI_API_KEY"
	EnvLegacyAPIKey  = "API_KEY"
	EnvGeminiModel   = "GEMINI_MODEL"
	EnvGeminiBaseURL = "GEMINI_BASE_URL"
	EnvS3Bucket      = "CALORIECAM_S3_BUCKET"
	EnvAWSRegion     = "AWS_REGION"
)

// LoadEnv reads .env files from the working directory and the app config dir.
// Variables already present in the process environment win.
func LoadEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

func GeminiAPIKey() string {
	if v := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvLegacyAPIKey))
}
