// Package modelhandler serves the combined model catalog.
package modelhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/domain/generation"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/interfaces/httpserver/dto"
)

// ModelHandler handles model catalog HTTP requests.
type ModelHandler struct {
	service *generation.Service
	logger  zerolog.Logger
}

// NewModelHandler constructs a new handler instance.
func NewModelHandler(service *generation.Service, logger zerolog.Logger) *ModelHandler {
	return &ModelHandler{service: service, logger: logger}
}

// List handles GET /v1/models.
func (h *ModelHandler) List(c *gin.Context) {
	models := h.service.ListAvailableModels(c.Request.Context())
	infos := make([]dto.ModelInfo, 0, len(models))
	for _, m := range models {
		infos = append(infos, ToModelInfo(m))
	}
	c.JSON(http.StatusOK, dto.ModelsResponse{Success: true, Models: infos})
}

// ToModelInfo converts a domain model into its boundary form.
func ToModelInfo(m model.ModelID) dto.ModelInfo {
	info := dto.ModelInfo{
		Value:       m.Value(),
		Provider:    m.Provider(),
		DisplayName: m.DisplayName(),
		IsFree:      m.IsFree(),
	}
	if pricing := m.PricingInfo(); pricing != nil {
		info.Pricing = &dto.PricingInfo{Prompt: pricing.Prompt, Completion: pricing.Completion}
	}
	return info
}
