// Package instructionhandler exposes the saved-instruction history over HTTP.
package instructionhandler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chapter-api/internal/domain/instruction"
	"chapter-api/internal/interfaces/httpserver/dto"
	"chapter-api/internal/interfaces/httpserver/responses"
)

// InstructionHandler handles instruction history HTTP requests.
type InstructionHandler struct {
	service *instruction.Service
	logger  zerolog.Logger
}

// NewInstructionHandler constructs a new handler instance.
func NewInstructionHandler(service *instruction.Service, logger zerolog.Logger) *InstructionHandler {
	return &InstructionHandler{service: service, logger: logger}
}

func toEntryDTO(e instruction.Entry) dto.InstructionEntry {
	return dto.InstructionEntry{
		ID:           e.ID,
		Content:      e.Content,
		Timestamp:    e.Timestamp,
		Name:         e.Name,
		IsCustomName: e.IsCustomName,
		DisplayName:  e.DisplayName(),
	}
}

// List handles GET /v1/instructions.
func (h *InstructionHandler) List(c *gin.Context) {
	entries := h.service.List(c.Request.Context())
	out := make([]dto.InstructionEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	c.JSON(http.StatusOK, dto.InstructionsResponse{Success: true, Instructions: out})
}

// Add handles POST /v1/instructions.
func (h *InstructionHandler) Add(c *gin.Context) {
	var req dto.AddInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.service.Add(c.Request.Context(), req.Content)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InstructionResponse{Success: true, Instruction: toEntryDTO(entry)})
}

// Rename handles PATCH /v1/instructions/:id.
func (h *InstructionHandler) Rename(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid instruction id")
		return
	}
	var req dto.RenameInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Rename(c.Request.Context(), id, req.Name); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{Success: true})
}

// Delete handles DELETE /v1/instructions/:id.
func (h *InstructionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid instruction id")
		return
	}

	remaining, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	out := make([]dto.InstructionEntry, 0, len(remaining))
	for _, e := range remaining {
		out = append(out, toEntryDTO(e))
	}
	c.JSON(http.StatusOK, dto.InstructionsResponse{Success: true, Instructions: out})
}

// GetLimit handles GET /v1/instructions/limit.
func (h *InstructionHandler) GetLimit(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LimitResponse{Success: true, Limit: h.service.GetLimit(c.Request.Context())})
}

// SetLimit handles PUT /v1/instructions/limit.
func (h *InstructionHandler) SetLimit(c *gin.Context) {
	var req dto.LimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetLimit(c.Request.Context(), req.Limit); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LimitResponse{Success: true, Limit: req.Limit})
}
