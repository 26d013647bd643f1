package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"chapter-api/internal/domain/credential"
	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/inference"
	"chapter-api/internal/infrastructure/logger"
)

// Service coordinates a Record through the provider backends: it validates
// preconditions, resolves credentials, dispatches by the model's route and
// finalizes the record's status.
type Service struct {
	direct     inference.Backend
	aggregated inference.Backend
	logger     zerolog.Logger
}

// NewService wires the coordinator with its two backends.
func NewService(direct, aggregated inference.Backend) *Service {
	return &Service{
		direct:     direct,
		aggregated: aggregated,
		logger:     logger.ForComponent("generation"),
	}
}

// Generate drives one pending record to a terminal state. On any failure the
// record is marked failed with the error's message and that same error is
// returned; on success the record is marked completed and returned.
func (s *Service) Generate(ctx context.Context, record *Record, creds credential.Credentials) (*Record, error) {
	if record == nil {
		return nil, &domainerrors.PreconditionError{Message: "generation record is required"}
	}
	switch record.Status {
	case StatusPending:
	case StatusCompleted:
		return nil, &domainerrors.PreconditionError{Message: fmt.Sprintf("generation %s was already completed", record.ID)}
	case StatusFailed:
		return nil, &domainerrors.PreconditionError{Message: fmt.Sprintf("generation %s already failed", record.ID)}
	default:
		return nil, &domainerrors.PreconditionError{Message: fmt.Sprintf("generation %s has unknown status %q", record.ID, record.Status)}
	}

	result, err := s.run(ctx, record, creds)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("generation_id", record.ID).
			Str("model", record.ModelID.Value()).
			Msg("generation failed")
		if failErr := record.Fail(err.Error()); failErr != nil {
			s.logger.Error().Err(failErr).Str("generation_id", record.ID).Msg("record transition conflict")
		}
		return nil, err
	}

	chapters := result.Chapters
	if url := strings.TrimSpace(record.Transcript.VideoURL); url != "" {
		chapters = url + "\n\n" + chapters
	}
	record.FinishReason = result.FinishReason
	if err := record.Complete(chapters); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("generation_id", record.ID).
		Str("model", result.Model).
		Str("finish_reason", result.FinishReason).
		Msg("generation completed")
	return record, nil
}

func (s *Service) run(ctx context.Context, record *Record, creds credential.Credentials) (*inference.GenerateResult, error) {
	key := creds.KeyFor(record.ModelID)
	if record.ModelID.RequiresAPIKey() && key == "" {
		return nil, &domainerrors.CredentialError{ModelDisplayName: record.ModelID.DisplayName()}
	}

	backend, err := s.backendFor(record.ModelID)
	if err != nil {
		return nil, err
	}

	result, err := backend.Generate(ctx, inference.GenerateRequest{
		Prompt: BuildPrompt(record.Transcript, record.Instructions),
		Model:  record.ModelID,
		APIKey: key,
	})
	if err != nil {
		return nil, err
	}
	if result == nil || strings.TrimSpace(result.Chapters) == "" {
		return nil, &domainerrors.InvalidResponseError{Message: "provider returned no chapters"}
	}
	return result, nil
}

func (s *Service) backendFor(m model.ModelID) (inference.Backend, error) {
	switch m.Route() {
	case model.RouteDirect:
		return s.direct, nil
	case model.RouteAggregated:
		return s.aggregated, nil
	default:
		return nil, &domainerrors.UnsupportedProviderError{Provider: m.Provider()}
	}
}

// CanGenerate reports whether the credentials can drive the model. It never
// returns an error; unusable input answers false.
func (s *Service) CanGenerate(m model.ModelID, creds credential.Credentials) bool {
	if m.IsZero() {
		return false
	}
	return creds.CanUse(m)
}

// ListAvailableModels concatenates both backends' catalogs, direct provider
// first.
func (s *Service) ListAvailableModels(ctx context.Context) []model.ModelID {
	models := s.direct.ListModels(ctx)
	return append(models, s.aggregated.ListModels(ctx)...)
}
