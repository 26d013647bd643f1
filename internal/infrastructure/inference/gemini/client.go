// Package gemini implements the direct-provider backend: a small fixed model
// catalog called with the API key as a URL query parameter.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/inference"
	"chapter-api/internal/infrastructure/logger"
)

// CatalogModelIDs is the fixed set of servable model ids.
var CatalogModelIDs = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
}

// keyPattern is deliberately conservative: letters, digits, underscore,
// hyphen. Real keys are longer than 10 characters.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const (
	generateTemperature     = 0.7
	generateTopK            = 40
	generateTopP            = 0.95
	generateMaxOutputTokens = 8192
)

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// noBlockSafetySettings disables provider-side blocking so that blocked
// content only ever comes back as an explicit finish reason.
var noBlockSafetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_NONE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_NONE"},
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client is the direct-provider backend.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  zerolog.Logger
}

// NewClient builds the backend against the given API base URL.
func NewClient(httpClient *resty.Client, baseURL string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.ForComponent("gemini"),
	}
}

var _ inference.Backend = (*Client)(nil)

// ListModels returns the fixed catalog. Every model requires a key, so no
// pricing is attached.
func (c *Client) ListModels(context.Context) []model.ModelID {
	models := make([]model.ModelID, 0, len(CatalogModelIDs))
	for _, id := range CatalogModelIDs {
		m, err := model.New(id, model.ProviderGemini, nil)
		if err != nil {
			continue
		}
		models = append(models, m)
	}
	return models
}

// ValidateKey checks the key's shape: conservative charset, length over 10.
func (c *Client) ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &domainerrors.ValidationError{Field: "apiKey", Message: "API key is required"}
	}
	if len(key) <= 10 || !keyPattern.MatchString(key) {
		return &domainerrors.ValidationError{Field: "apiKey", Message: "API key format is invalid"}
	}
	return nil
}

// ValidateModel checks membership in the fixed catalog.
func (c *Client) ValidateModel(_ context.Context, id string) error {
	for _, known := range CatalogModelIDs {
		if known == id {
			return nil
		}
	}
	return &domainerrors.ValidationError{Field: "model", Message: fmt.Sprintf("unknown model %q", id)}
}

// Generate calls the generateContent endpoint with the key embedded as a
// query parameter.
func (c *Client) Generate(ctx context.Context, req inference.GenerateRequest) (*inference.GenerateResult, error) {
	body := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     generateTemperature,
			TopK:            generateTopK,
			TopP:            generateTopP,
			MaxOutputTokens: generateMaxOutputTokens,
		},
		SafetySettings: noBlockSafetySettings,
	}

	var parsed generateContentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", req.APIKey).
		SetBody(body).
		SetResult(&parsed).
		Post(fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, req.Model.Value()))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp)
	}

	return c.parseResponse(req.Model.Value(), parsed)
}

func (c *Client) parseResponse(modelID string, parsed generateContentResponse) (*inference.GenerateResult, error) {
	if len(parsed.Candidates) == 0 {
		return nil, &domainerrors.InvalidResponseError{Message: "provider returned no candidates"}
	}

	first := parsed.Candidates[0]
	switch first.FinishReason {
	case "SAFETY":
		return nil, &domainerrors.ContentBlockedError{Reason: "safety"}
	case "RECITATION":
		return nil, &domainerrors.ContentBlockedError{Reason: "recitation"}
	}

	if len(first.Content.Parts) == 0 {
		return nil, &domainerrors.InvalidResponseError{Message: "candidate has no content"}
	}
	text := strings.TrimSpace(first.Content.Parts[0].Text)
	if text == "" {
		return nil, &domainerrors.InvalidResponseError{Message: "candidate content is empty"}
	}

	return &inference.GenerateResult{
		Chapters:     text,
		FinishReason: first.FinishReason,
		Model:        modelID,
	}, nil
}

func (c *Client) errorFromResponse(resp *resty.Response) error {
	status := resp.StatusCode()
	category := domainerrors.CategorizeStatus(status)

	var message string
	switch category {
	case domainerrors.ProviderErrorInvalidKey:
		message = "invalid API key"
	case domainerrors.ProviderErrorForbidden:
		message = "API key does not have permission for this model"
	case domainerrors.ProviderErrorRateLimited:
		message = "rate limit exceeded, please try again later"
	case domainerrors.ProviderErrorBadRequest:
		message = fmt.Sprintf("request error: %s", providerMessage(resp.String()))
	default:
		message = fmt.Sprintf("API request failed: %d", status)
	}

	c.logger.Warn().Int("status", status).Str("category", string(category)).Msg("provider call failed")
	return &domainerrors.ProviderError{Category: category, Status: status, Message: message}
}

// providerMessage extracts the provider's own error message from a failure
// body, falling back to "Bad request" when absent or unparsable.
func providerMessage(rawBody string) string {
	var parsed errorResponse
	if err := json.Unmarshal([]byte(rawBody), &parsed); err == nil {
		if msg := strings.TrimSpace(parsed.Error.Message); msg != "" {
			return msg
		}
	}
	return "Bad request"
}
