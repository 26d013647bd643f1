package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/inference"
	"chapter-api/internal/utils/httpclients"
)

func testRequest(t *testing.T) inference.GenerateRequest {
	t.Helper()
	m, err := model.New("gemini-2.5-flash", model.ProviderGemini, nil)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return inference.GenerateRequest{Prompt: "transcript here", Model: m, APIKey: "test-key-123456"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(httpclients.NewClient("GeminiTest", 5*time.Second), server.URL), server
}

func candidateBody(text, finishReason string) string {
	body := map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"parts": []map[string]any{{"text": text}}},
			"finishReason": finishReason,
		}},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody("  00:00 Intro\n02:10 Setup  ", "STOP")))
	})

	result, err := client.Generate(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Chapters != "00:00 Intro\n02:10 Setup" {
		t.Errorf("Chapters = %q, want trimmed text", result.Chapters)
	}
	if result.FinishReason != "STOP" || result.Model != "gemini-2.5-flash" {
		t.Errorf("result = %+v", result)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key-123456" {
		t.Errorf("key query param = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "transcript here" {
		t.Errorf("request contents = %+v", gotBody.Contents)
	}
	if len(gotBody.SafetySettings) != 4 {
		t.Errorf("safety settings = %+v", gotBody.SafetySettings)
	}
	for _, s := range gotBody.SafetySettings {
		if s.Threshold != "BLOCK_NONE" {
			t.Errorf("safety threshold = %q, want BLOCK_NONE", s.Threshold)
		}
	}
}

func TestGenerateBlockedContent(t *testing.T) {
	tests := []struct {
		finishReason string
		wantReason   string
	}{
		{"SAFETY", "safety"},
		{"RECITATION", "recitation"},
	}
	for _, tt := range tests {
		t.Run(tt.finishReason, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(candidateBody("", tt.finishReason)))
			})

			_, err := client.Generate(context.Background(), testRequest(t))
			var blocked *domainerrors.ContentBlockedError
			if !errors.As(err, &blocked) {
				t.Fatalf("want ContentBlockedError, got %v", err)
			}
			if blocked.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", blocked.Reason, tt.wantReason)
			}
		})
	}
}

func TestGenerateInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"missing candidates", `{}`},
		{"candidate without parts", `{"candidates":[{"content":{"parts":[]},"finishReason":"STOP"}]}`},
		{"empty text", candidateBody("   ", "STOP")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), testRequest(t))
			var invalid *domainerrors.InvalidResponseError
			if !errors.As(err, &invalid) {
				t.Fatalf("want InvalidResponseError, got %v", err)
			}
		})
	}
}

func TestGenerateStatusMapping(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory domainerrors.ProviderErrorCategory
		wantContains string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, domainerrors.ProviderErrorInvalidKey, "invalid API key"},
		{"forbidden", http.StatusForbidden, `{}`, domainerrors.ProviderErrorForbidden, "permission"},
		{"rate limited", http.StatusTooManyRequests, `{}`, domainerrors.ProviderErrorRateLimited, "rate limit"},
		{"bad request with message", http.StatusBadRequest, `{"error":{"message":"contents is required"}}`, domainerrors.ProviderErrorBadRequest, "request error: contents is required"},
		{"bad request without message", http.StatusBadRequest, `{}`, domainerrors.ProviderErrorBadRequest, "request error: Bad request"},
		{"server error", http.StatusInternalServerError, `{}`, domainerrors.ProviderErrorUnknown, "API request failed: 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), testRequest(t))
			var provErr *domainerrors.ProviderError
			if !errors.As(err, &provErr) {
				t.Fatalf("want ProviderError, got %v", err)
			}
			if provErr.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", provErr.Category, tt.wantCategory)
			}
			if provErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", provErr.Status, tt.status)
			}
			if !strings.Contains(provErr.Message, tt.wantContains) {
				t.Errorf("Message = %q, want substring %q", provErr.Message, tt.wantContains)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	client := NewClient(httpclients.NewClient("GeminiTest", time.Second), "http://unused")
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "AIzaSyA1234567890_-abc", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too short", "short_key", true},
		{"bad charset", "key with spaces here", true},
		{"punctuation", "key!@#$%^&*()1234", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateModel(t *testing.T) {
	client := NewClient(httpclients.NewClient("GeminiTest", time.Second), "http://unused")
	if err := client.ValidateModel(context.Background(), "gemini-2.5-pro"); err != nil {
		t.Errorf("catalog model rejected: %v", err)
	}
	if err := client.ValidateModel(context.Background(), "gemini-1.0-ultra"); err == nil {
		t.Error("unknown model must be rejected")
	}
}

func TestListModels(t *testing.T) {
	client := NewClient(httpclients.NewClient("GeminiTest", time.Second), "http://unused")
	models := client.ListModels(context.Background())
	if len(models) != 2 {
		t.Fatalf("len = %d, want 2", len(models))
	}
	for _, m := range models {
		if m.Provider() != model.ProviderGemini {
			t.Errorf("provider = %q", m.Provider())
		}
		if !m.RequiresAPIKey() {
			t.Error("direct provider models must require a key")
		}
	}
}
