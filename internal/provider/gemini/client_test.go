package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saadjs/caloriecam/internal/model"
)

func geminiServer(t *testing.T, status int, text string, check func(*testing.T, *http.Request, generateRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req generateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if check != nil {
			check(t, r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		resp := map[string]any{
			"candidates": []any{
				map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
			},
		}
		if text == "" {
			resp = map[string]any{"candidates": []any{}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

const sampleEstimate = `{
  "foodItems": [{"name": "أرز", "calories": 200, "weight": "150g", "macros": {"protein": 4, "carbs": 44, "fats": 1}}],
  "totalCalories": 200,
  "totalMacros": {"protein": 4, "carbs": 44, "fats": 1},
  "healthRating": "Healthy",
  "suggestions": "أضف الخضار"
}`

func TestAnalyzeImageSendsInlineJPEGAndSchema(t *testing.T) {
	t.Parallel()

	img := []byte{0xff, 0xd8, 0xff, 0xe0}
	ts := geminiServer(t, http.StatusOK, sampleEstimate, func(t *testing.T, r *http.Request, req generateRequest) {
		if r.URL.Path != "/v1beta/models/"+DefaultModel+":generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "demo" {
			t.Errorf("expected api key header")
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected json response mime type")
		}
		if got := req.GenerationConfig.ResponseSchema.Properties["healthRating"].Enum; len(got) != 3 {
			t.Errorf("expected rating enum, got %v", got)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/jpeg" {
			t.Errorf("expected inline jpeg first, got %+v", parts)
			return
		}
		if parts[0].InlineData.Data != base64.StdEncoding.EncodeToString(img) {
			t.Errorf("unexpected image payload")
		}
		if !strings.Contains(parts[1].Text, "Respond in Arabic") {
			t.Errorf("expected Arabic prompt, got %q", parts[1].Text)
		}
	})
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	est, err := c.AnalyzeImage(context.Background(), img, model.LanguageArabic)
	if err != nil {
		t.Fatalf("analyze image: %v", err)
	}
	if est.TotalCalories != 200 || est.HealthRating != model.RatingHealthy || len(est.FoodItems) != 1 || est.FoodItems[0].Name != "أرز" {
		t.Fatalf("unexpected estimate: %+v", est)
	}
}

func TestAnalyzeTextUsesConfiguredModelAndLanguage(t *testing.T) {
	t.Parallel()

	ts := geminiServer(t, http.StatusOK, "```json\n"+sampleEstimate+"\n```", func(t *testing.T, r *http.Request, req generateRequest) {
		if !strings.Contains(r.URL.Path, "/models/custom-model:") {
			t.Errorf("expected custom model in path, got %q", r.URL.Path)
		}
		text := req.Contents[0].Parts[0].Text
		if !strings.Contains(text, "two eggs and toast") || !strings.Contains(text, "Respond in English") {
			t.Errorf("unexpected prompt %q", text)
		}
	})
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, Model: "custom-model", HTTPClient: ts.Client()}
	if _, err := c.AnalyzeText(context.Background(), "two eggs and toast", model.LanguageEnglish); err != nil {
		t.Fatalf("analyze text: %v", err)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		text   string
		want   error
	}{
		{"empty", http.StatusOK, "", ErrEmptyResponse},
		{"not json", http.StatusOK, "I think it is rice", ErrParse},
		{"localized rating", http.StatusOK, `{"foodItems":[],"totalCalories":1,"totalMacros":{},"healthRating":"صحي","suggestions":""}`, ErrParse},
		{"missing rating", http.StatusOK, `{"foodItems":[],"totalCalories":1}`, ErrParse},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := geminiServer(t, tc.status, tc.text, nil)
			defer ts.Close()
			c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
			_, err := c.AnalyzeText(context.Background(), "rice", model.LanguageEnglish)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	ts := geminiServer(t, http.StatusInternalServerError, "", nil)
	defer ts.Close()
	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.AnalyzeText(context.Background(), "rice", model.LanguageEnglish); err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("expected status error, got %v", err)
	}
	if _, err := (&Client{}).AnalyzeText(context.Background(), "rice", model.LanguageEnglish); err == nil {
		t.Fatalf("expected missing key error")
	}
}

func TestStripDataURL(t *testing.T) {
	t.Parallel()

	if got := StripDataURL("data:image/jpeg;base64,AAAA"); got != "AAAA" {
		t.Fatalf("expected prefix stripped, got %q", got)
	}
	if got := StripDataURL("AAAA"); got != "AAAA" {
		t.Fatalf("expected raw data unchanged, got %q", got)
	}
}
