// Package settingshandler exposes the persisted user settings over HTTP.
package settingshandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/domain/credential"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/domain/settings"
	"chapter-api/internal/interfaces/httpserver/dto"
	"chapter-api/internal/interfaces/httpserver/handlers/modelhandler"
	"chapter-api/internal/interfaces/httpserver/responses"
)

// SettingsHandler handles settings HTTP requests.
type SettingsHandler struct {
	service *settings.Service
	logger  zerolog.Logger
}

// NewSettingsHandler constructs a new handler instance.
func NewSettingsHandler(service *settings.Service, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

// Get handles GET /v1/settings. Loading never fails; corrupted or missing
// records come back as defaults.
func (h *SettingsHandler) Get(c *gin.Context) {
	loaded := h.service.Load(c.Request.Context())
	c.JSON(http.StatusOK, dto.SettingsResponse{
		Success:          true,
		GeminiAPIKey:     loaded.Credentials.GeminiKey(),
		OpenRouterAPIKey: loaded.Credentials.OpenRouterKey(),
		Model:            modelhandler.ToModelInfo(loaded.Model),
		Extras:           loaded.Extras,
	})
}

// Save handles PUT /v1/settings.
func (h *SettingsHandler) Save(c *gin.Context) {
	var req dto.SettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}

	creds := credential.New(req.GeminiAPIKey, req.OpenRouterAPIKey)
	m := model.FromJSON(req.Model)
	if err := h.service.Save(c.Request.Context(), creds, m, req.Extras); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{Success: true})
}
