package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/saadjs/caloriecam/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-3-flash-preview"
)

var (
	ErrEmptyResponse = errors.New("no response from AI")
	ErrParse         = errors.New("failed to parse analysis results")
)

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpg|jpeg|webp);base64,`)

// StripDataURL removes a base64 image data URL prefix, if present.
func StripDataURL(s string) string {
	return dataURLPrefix.ReplaceAllString(s, "")
}

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// AnalyzeImage estimates nutrition for a JPEG photo of a meal.
func (c *Client) AnalyzeImage(ctx context.Context, jpeg []byte, lang model.Language) (model.NutritionEstimate, error) {
	if len(jpeg) == 0 {
		return model.NutritionEstimate{}, fmt.Errorf("image is required")
	}
	name := lang.Name()
	prompt := fmt.Sprintf(`Analyze this food image. Identify the food items, estimate their weight, calories, and macronutrients (protein, carbs, fats).
Respond in %[1]s.
For 'healthRating', use EXACTLY one of these English values: "Healthy", "Moderate", "Unhealthy".
For all other text fields (name, suggestions), use %[1]s.
Provide a total summary and a health rating.
Also give a short suggestion for a healthier alternative or improvement.`, name)
	parts := []part{
		{InlineData: &inlineData{MimeType: "image/jpeg", Data: base64.StdEncoding.EncodeToString(jpeg)}},
		{Text: prompt},
	}
	return c.generate(ctx, parts)
}

// AnalyzeText estimates nutrition for a free-text meal description.
func (c *Client) AnalyzeText(ctx context.Context, description string, lang model.Language) (model.NutritionEstimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.NutritionEstimate{}, fmt.Errorf("description is required")
	}
	name := lang.Name()
	prompt := fmt.Sprintf(`Analyze this food description: %q.
Identify the food items based on the text, estimate standard weight, calories, and macronutrients.
Respond in %s.
For 'healthRating', use EXACTLY one of these English values: "Healthy", "Moderate", "Unhealthy".
For all other text fields (name, suggestions), use %s.
Provide a total summary.
Also give a short suggestion.`, description, name, name)
	return c.generate(ctx, []part{{Text: prompt}})
}

func (c *Client) generate(ctx context.Context, parts []part) (model.NutritionEstimate, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return model.NutritionEstimate{}, fmt.Errorf("missing Gemini API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	log := c.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("model", modelName)

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("marshal Gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	log.Debug("sending analysis request")
	resp, err := httpClient.Do(req)
	if err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Warn("gemini request failed")
		return model.NutritionEstimate{}, fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("decode Gemini response: %w", err)
	}
	text := parsed.text()
	if text == "" {
		return model.NutritionEstimate{}, ErrEmptyResponse
	}

	est, err := parseEstimate(text)
	if err != nil {
		log.WithError(err).Warn("failed to parse AI response")
		return model.NutritionEstimate{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return est, nil
}

func parseEstimate(text string) (model.NutritionEstimate, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var est model.NutritionEstimate
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &est); err != nil {
		return est, err
	}
	if est.HealthRating == "" {
		return est, fmt.Errorf("missing healthRating")
	}
	if est.FoodItems == nil {
		est.FoodItems = []model.FoodItem{}
	}
	return est, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
