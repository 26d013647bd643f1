// Package dto provides data transfer objects for HTTP requests/responses.
// Field names are part of the boundary contract with the extension and use
// camelCase.
package dto

import "encoding/json"

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds the failure envelope.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// GenerateRequest starts one chapter generation.
type GenerateRequest struct {
	TranscriptText     string          `json:"transcriptText"`
	VideoTitle         string          `json:"videoTitle"`
	VideoAuthor        string          `json:"videoAuthor"`
	VideoID            string          `json:"videoId"`
	CustomInstructions string          `json:"customInstructions"`
	ModelID            json.RawMessage `json:"modelId"`
	APIKeys            APIKeys         `json:"apiKeys"`
}

// APIKeys carries the per-provider keys supplied with a generation request.
type APIKeys struct {
	Gemini     string `json:"gemini"`
	OpenRouter string `json:"openRouter"`
}

// GenerateResponse is the success payload for a generation.
type GenerateResponse struct {
	Success      bool   `json:"success"`
	ResultID     string `json:"resultId"`
	Chapters     string `json:"chapters"`
	Model        string `json:"model"`
	FinishReason string `json:"finishReason,omitempty"`
}

// ModelInfo describes one selectable model.
type ModelInfo struct {
	Value       string       `json:"value"`
	Provider    string       `json:"provider"`
	DisplayName string       `json:"displayName"`
	IsFree      bool         `json:"isFree"`
	Pricing     *PricingInfo `json:"pricing,omitempty"`
}

// PricingInfo mirrors the aggregator's per-token costs.
type PricingInfo struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// ModelsResponse lists the selectable models.
type ModelsResponse struct {
	Success bool        `json:"success"`
	Models  []ModelInfo `json:"models"`
}

// InstructionEntry is one saved instruction in boundary form.
type InstructionEntry struct {
	ID           int64  `json:"id"`
	Content      string `json:"content"`
	Timestamp    string `json:"timestamp"`
	Name         string `json:"name,omitempty"`
	IsCustomName bool   `json:"isCustomName"`
	DisplayName  string `json:"displayName"`
}

// InstructionsResponse lists the saved instructions.
type InstructionsResponse struct {
	Success      bool               `json:"success"`
	Instructions []InstructionEntry `json:"instructions"`
}

// InstructionResponse returns one saved or updated instruction.
type InstructionResponse struct {
	Success     bool             `json:"success"`
	Instruction InstructionEntry `json:"instruction"`
}

// AddInstructionRequest saves a new instruction.
type AddInstructionRequest struct {
	Content string `json:"content"`
}

// RenameInstructionRequest assigns or clears a custom name.
type RenameInstructionRequest struct {
	Name string `json:"name"`
}

// LimitRequest sets the history bound.
type LimitRequest struct {
	Limit int `json:"limit"`
}

// LimitResponse returns the history bound.
type LimitResponse struct {
	Success bool `json:"success"`
	Limit   int  `json:"limit"`
}

// SettingsPayload is the persisted settings in boundary form.
type SettingsPayload struct {
	GeminiAPIKey     string          `json:"geminiApiKey"`
	OpenRouterAPIKey string          `json:"openRouterApiKey"`
	Model            json.RawMessage `json:"model,omitempty"`
	Extras           map[string]any  `json:"extras,omitempty"`
}

// SettingsResponse returns the loaded settings.
type SettingsResponse struct {
	Success          bool           `json:"success"`
	GeminiAPIKey     string         `json:"geminiApiKey"`
	OpenRouterAPIKey string         `json:"openRouterApiKey"`
	Model            ModelInfo      `json:"model"`
	Extras           map[string]any `json:"extras"`
}

// OKResponse acknowledges a write with no payload.
type OKResponse struct {
	Success bool `json:"success"`
}
