// Package generationhandler exposes chapter generation over HTTP.
package generationhandler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/domain/credential"
	"chapter-api/internal/domain/generation"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/metrics"
	"chapter-api/internal/interfaces/httpserver/dto"
	"chapter-api/internal/interfaces/httpserver/responses"
)

// GenerationHandler handles chapter generation HTTP requests.
type GenerationHandler struct {
	service  *generation.Service
	sessions *generation.SessionStore
	logger   zerolog.Logger
}

// NewGenerationHandler constructs a new handler instance.
func NewGenerationHandler(service *generation.Service, sessions *generation.SessionStore, logger zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{
		service:  service,
		sessions: sessions,
		logger:   logger,
	}
}

// Generate handles POST /v1/chapters.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.TranscriptText) == "" {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "transcriptText is required")
		return
	}

	m := model.FromJSON(req.ModelID)
	creds := credential.New(req.APIKeys.Gemini, req.APIKeys.OpenRouter)
	record := generation.NewRecord(generation.Transcript{
		Text:     req.TranscriptText,
		Title:    req.VideoTitle,
		Author:   req.VideoAuthor,
		VideoURL: canonicalVideoURL(req.VideoID),
	}, m, req.CustomInstructions)

	start := time.Now()
	_, err := h.service.Generate(c.Request.Context(), record, creds)
	metrics.RecordGeneration(m.Provider(), m.Value(), string(record.Status), time.Since(start).Seconds())

	// Terminal records are persisted either way so the extension can
	// re-fetch results after a popup reload.
	if !record.IsPending() {
		if _, saveErr := h.sessions.Save(c.Request.Context(), record); saveErr != nil {
			h.logger.Error().Err(saveErr).Str("generation_id", record.ID).Msg("failed to persist session")
		}
	}

	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateResponse{
		Success:      true,
		ResultID:     record.ID,
		Chapters:     record.Chapters,
		Model:        record.ModelID.Value(),
		FinishReason: record.FinishReason,
	})
}

// canonicalVideoURL derives the watch URL the chapters are prefixed with.
func canonicalVideoURL(videoID string) string {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
