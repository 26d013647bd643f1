package generationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/domain/generation"
	"chapter-api/internal/interfaces/httpserver/dto"
	"chapter-api/internal/interfaces/httpserver/responses"
)

// SessionHandler serves persisted generation sessions.
type SessionHandler struct {
	sessions *generation.SessionStore
	logger   zerolog.Logger
}

// NewSessionHandler constructs a new handler instance.
func NewSessionHandler(sessions *generation.SessionStore, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type sessionsResponse struct {
	Success  bool                 `json:"success"`
	Sessions []generation.Session `json:"sessions"`
}

type sessionResponse struct {
	Success bool               `json:"success"`
	Session generation.Session `json:"session"`
}

// List handles GET /v1/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	sessions := h.sessions.List(c.Request.Context())
	if sessions == nil {
		sessions = []generation.Session{}
	}
	c.JSON(http.StatusOK, sessionsResponse{Success: true, Sessions: sessions})
}

// Get handles GET /v1/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	session, ok := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusNotFound, "session not found")
		return
	}
	c.JSON(http.StatusOK, sessionResponse{Success: true, Session: session})
}

// Delete handles DELETE /v1/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{Success: true})
}
