// Package inference defines the provider backend contract and shared request
// and result shapes for chapter generation calls.
package inference

import (
	"context"

	"chapter-api/internal/domain/model"
)

// GenerateRequest is the provider-neutral input a backend turns into its
// wire-specific call.
type GenerateRequest struct {
	Prompt string
	Model  model.ModelID
	APIKey string
}

// GenerateResult is the provider-neutral parsed response.
type GenerateResult struct {
	Chapters     string
	FinishReason string
	Model        string
}

// Backend is one upstream provider integration. Implementations map their
// HTTP failures onto the domainerrors taxonomy before returning.
type Backend interface {
	// Generate performs one chapter-generation call.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)

	// ListModels returns the models this backend can serve. A backend with
	// a live catalog returns an empty list when the catalog is unavailable.
	ListModels(ctx context.Context) []model.ModelID

	// ValidateKey checks an API key's shape without calling the provider.
	ValidateKey(key string) error

	// ValidateModel checks that a model id is servable. Backends with a
	// live catalog are permissive while the catalog is unavailable.
	ValidateModel(ctx context.Context, id string) error
}
