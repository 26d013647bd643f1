// Package settings persists the user's credentials, selected model and
// miscellaneous preferences as one storage record.
package settings

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"chapter-api/internal/domain/credential"
	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/infrastructure/storage"
)

const settingsKey = "user_settings"

// Defaults applied when nothing is persisted or the record cannot be read.
var defaultExtras = map[string]any{
	"theme":            "system",
	"autoCopy":         false,
	"notifyOnComplete": true,
}

// Settings is the in-memory shape handed to callers.
type Settings struct {
	Credentials credential.Credentials
	Model       model.ModelID
	Extras      map[string]any
}

// record is the persisted JSON form. The model is stored both as its plain
// id and as its full JSON so loading survives either field being corrupted.
type record struct {
	GeminiKey     string          `json:"geminiApiKey"`
	OpenRouterKey string          `json:"openRouterApiKey"`
	ModelValue    string          `json:"selectedModel"`
	Model         json.RawMessage `json:"selectedModelInfo"`
	Extras        map[string]any  `json:"extras"`
}

// Service reads and writes the settings record.
type Service struct {
	store  storage.Adapter
	logger zerolog.Logger
}

// NewService builds the settings service over a storage adapter.
func NewService(store storage.Adapter) *Service {
	return &Service{
		store:  store,
		logger: logger.ForComponent("settings"),
	}
}

// DefaultSettings returns the settings used when nothing is persisted: no
// credentials, the default model, default extras.
func DefaultSettings() Settings {
	return Settings{
		Credentials: credential.New("", ""),
		Model:       model.DefaultModelID(),
		Extras:      cloneExtras(defaultExtras),
	}
}

// Save persists credentials, the selected model and extras as one record.
// Extras are merged over the defaults before writing so a partial update
// never drops known preference keys.
func (s *Service) Save(ctx context.Context, creds credential.Credentials, m model.ModelID, extras map[string]any) error {
	if m.IsZero() {
		return &domainerrors.ValidationError{Field: "model", Message: "a selected model is required"}
	}

	modelJSON, err := json.Marshal(m)
	if err != nil {
		return err
	}
	merged := cloneExtras(defaultExtras)
	for k, v := range extras {
		merged[k] = v
	}

	return s.store.Set(ctx, settingsKey, record{
		GeminiKey:     creds.GeminiKey(),
		OpenRouterKey: creds.OpenRouterKey(),
		ModelValue:    m.Value(),
		Model:         modelJSON,
		Extras:        merged,
	})
}

// Load reads the persisted settings. Any read failure or corruption is
// logged and degrades to defaults; the model falls back field by field via
// the default-on-malformed deserialization.
func (s *Service) Load(ctx context.Context) Settings {
	raw, found, err := s.store.Get(ctx, settingsKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("settings read failed, using defaults")
		return DefaultSettings()
	}
	if !found {
		return DefaultSettings()
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.logger.Warn().Err(err).Msg("settings record is corrupted, using defaults")
		return DefaultSettings()
	}

	extras := cloneExtras(defaultExtras)
	for k, v := range rec.Extras {
		extras[k] = v
	}
	return Settings{
		Credentials: credential.New(rec.GeminiKey, rec.OpenRouterKey),
		Model:       model.FromJSON(rec.Model),
		Extras:      extras,
	}
}

func cloneExtras(extras map[string]any) map[string]any {
	clone := make(map[string]any, len(extras))
	for k, v := range extras {
		clone[k] = v
	}
	return clone
}
