// Package openrouter implements the routed-aggregator backend: an
// OpenAI-chat-style API with bearer auth and a live model catalog.
package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/inference"
	"chapter-api/internal/infrastructure/logger"
)

const (
	generateTemperature = 0.7
	generateTopP        = 0.95
	generateMaxTokens   = 8192

	defaultCatalogTTL = time.Hour
)

// Options configures the backend.
type Options struct {
	BaseURL string
	// Referer and Title become the HTTP-Referer and X-Title attribution
	// headers the aggregator uses to identify calling applications.
	Referer string
	Title   string
	// CatalogTTL bounds how long a fetched model list is trusted.
	CatalogTTL time.Duration
}

// Client is the routed-aggregator backend.
type Client struct {
	http    *resty.Client
	baseURL string
	referer string
	title   string
	catalog *catalog
	logger  zerolog.Logger
}

// NewClient builds the backend. The catalog starts unavailable until the
// first successful RefreshCatalog.
func NewClient(httpClient *resty.Client, opts Options) *Client {
	ttl := opts.CatalogTTL
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		referer: opts.Referer,
		title:   opts.Title,
		catalog: newCatalog(ttl),
		logger:  logger.ForComponent("openrouter"),
	}
}

var _ inference.Backend = (*Client)(nil)

type modelsResponse struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID      string `json:"id"`
	Pricing struct {
		Prompt     string `json:"prompt"`
		Completion string `json:"completion"`
	} `json:"pricing"`
}

// RefreshCatalog fetches the live model list. Failure is non-fatal: the
// catalog keeps its previous contents, or stays unavailable when nothing was
// ever loaded.
func (c *Client) RefreshCatalog(ctx context.Context) error {
	var parsed modelsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&parsed).
		Get(c.baseURL + "/models")
	if err == nil && resp.IsError() {
		err = fmt.Errorf("models endpoint returned %d", resp.StatusCode())
	}
	if err != nil {
		c.catalog.markUnavailable()
		c.logger.Warn().Err(err).Msg("model catalog refresh failed")
		return err
	}

	models := make([]model.ModelID, 0, len(parsed.Data))
	for _, entry := range parsed.Data {
		m, err := model.New(entry.ID, model.ProviderOpenRouter, &model.Pricing{
			Prompt:     entry.Pricing.Prompt,
			Completion: entry.Pricing.Completion,
		})
		if err != nil {
			continue
		}
		models = append(models, m)
	}
	c.catalog.store(models)
	c.logger.Info().Int("models", len(models)).Msg("model catalog refreshed")
	return nil
}

func (c *Client) ensureCatalog(ctx context.Context) {
	if c.catalog.stale() {
		// Best effort; callers tolerate an unavailable catalog.
		_ = c.RefreshCatalog(ctx)
	}
}

// CatalogState reports whether a live model list is currently held.
func (c *Client) CatalogState() CatalogState {
	state, _ := c.catalog.snapshot()
	return state
}

// ListModels returns the cached live catalog, refreshing it when stale.
// Unavailable catalogs yield an empty list.
func (c *Client) ListModels(ctx context.Context) []model.ModelID {
	c.ensureCatalog(ctx)
	_, models := c.catalog.snapshot()
	return models
}

// ValidateKey requires a non-empty key. The aggregator issues keys in
// several formats, so no charset check is applied.
func (c *Client) ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return &domainerrors.ValidationError{Field: "apiKey", Message: "API key is required"}
	}
	return nil
}

// ValidateModel checks catalog membership when the catalog is loaded and
// accepts anything while it is unavailable.
func (c *Client) ValidateModel(ctx context.Context, id string) error {
	c.ensureCatalog(ctx)
	_, state, found := c.catalog.lookup(id)
	if state == CatalogUnavailable || found {
		return nil
	}
	return &domainerrors.ValidationError{Field: "model", Message: fmt.Sprintf("unknown model %q", id)}
}

// IsModelFree looks up live pricing. An unavailable catalog or unknown
// model conservatively counts as paid.
func (c *Client) IsModelFree(ctx context.Context, id string) bool {
	c.ensureCatalog(ctx)
	m, state, found := c.catalog.lookup(id)
	if state == CatalogUnavailable || !found {
		return false
	}
	return m.IsFree()
}

// Generate calls the chat-completions endpoint. A key is required for every
// call, free models included.
func (c *Client) Generate(ctx context.Context, req inference.GenerateRequest) (*inference.GenerateResult, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return nil, &domainerrors.CredentialError{ModelDisplayName: req.Model.DisplayName()}
	}

	body := openai.ChatCompletionRequest{
		Model: req.Model.Value(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: generateTemperature,
		TopP:        generateTopP,
		MaxTokens:   generateMaxTokens,
	}

	var parsed openai.ChatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", req.APIKey)).
		SetHeader("HTTP-Referer", c.referer).
		SetHeader("X-Title", c.title).
		SetBody(body).
		SetResult(&parsed).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, req.Model.Value())
	}

	return parseCompletion(parsed)
}

func parseCompletion(parsed openai.ChatCompletionResponse) (*inference.GenerateResult, error) {
	if len(parsed.Choices) == 0 {
		return nil, &domainerrors.InvalidResponseError{Message: "provider returned no choices"}
	}
	choice := parsed.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return nil, &domainerrors.InvalidResponseError{Message: "provider returned no content"}
	}
	return &inference.GenerateResult{
		Chapters:     text,
		FinishReason: string(choice.FinishReason),
		Model:        parsed.Model,
	}, nil
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, modelID string) error {
	status := resp.StatusCode()
	category := domainerrors.CategorizeStatus(status)

	var message string
	switch category {
	case domainerrors.ProviderErrorInvalidKey:
		if c.IsModelFree(ctx, modelID) {
			message = "access to this free model was denied, check your API key"
		} else {
			message = "invalid API key"
		}
	case domainerrors.ProviderErrorForbidden:
		if c.IsModelFree(ctx, modelID) {
			message = "access to this free model is forbidden for your account"
		} else {
			message = "API key does not have permission for this model"
		}
	case domainerrors.ProviderErrorRateLimited:
		message = "rate limit exceeded, please try again later"
	case domainerrors.ProviderErrorBadRequest:
		message = fmt.Sprintf("request error: %s", providerMessage(resp.String()))
	default:
		message = fmt.Sprintf("API request failed: %d", status)
	}

	c.logger.Warn().
		Int("status", status).
		Str("category", string(category)).
		Str("model", modelID).
		Msg("provider call failed")
	return &domainerrors.ProviderError{Category: category, Status: status, Message: message}
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func providerMessage(rawBody string) string {
	var parsed errorResponse
	if err := json.Unmarshal([]byte(rawBody), &parsed); err == nil {
		if msg := strings.TrimSpace(parsed.Error.Message); msg != "" {
			return msg
		}
	}
	return "Bad request"
}
