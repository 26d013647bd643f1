package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"chapter-api/internal/domain/credential"
	"chapter-api/internal/domain/model"
	"chapter-api/internal/infrastructure/storage"
)

type brokenAdapter struct{}

func (brokenAdapter) Get(context.Context, string) (json.RawMessage, bool, error) {
	return nil, false, errors.New("backend down")
}

func (brokenAdapter) Set(context.Context, string, any) error {
	return errors.New("backend down")
}

func (brokenAdapter) Remove(context.Context, string) error {
	return errors.New("backend down")
}

func selectedModel(t *testing.T) model.ModelID {
	t.Helper()
	m, err := model.New("google/gemini-2.5-flash", model.ProviderOpenRouter,
		&model.Pricing{Prompt: "0.000001", Completion: "0.000001"})
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewService(storage.NewMemoryAdapter())
	ctx := context.Background()

	creds := credential.New("gem-key", "or-key")
	m := selectedModel(t)
	err := svc.Save(ctx, creds, m, map[string]any{"theme": "dark", "customFlag": true})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := svc.Load(ctx)
	if got.Credentials.GeminiKey() != "gem-key" || got.Credentials.OpenRouterKey() != "or-key" {
		t.Errorf("credentials = %q/%q", got.Credentials.GeminiKey(), got.Credentials.OpenRouterKey())
	}
	if got.Model.Value() != m.Value() || got.Model.Provider() != m.Provider() {
		t.Errorf("model = %q/%q", got.Model.Value(), got.Model.Provider())
	}
	if got.Extras["theme"] != "dark" {
		t.Errorf("overridden extra lost: %v", got.Extras["theme"])
	}
	if got.Extras["customFlag"] != true {
		t.Errorf("custom extra lost: %v", got.Extras["customFlag"])
	}
	if got.Extras["notifyOnComplete"] != true {
		t.Errorf("default extra must survive the merge: %v", got.Extras["notifyOnComplete"])
	}
}

func TestSaveRejectsZeroModel(t *testing.T) {
	svc := NewService(storage.NewMemoryAdapter())
	err := svc.Save(context.Background(), credential.New("", ""), model.ModelID{}, nil)
	if err == nil {
		t.Fatal("zero model must be rejected")
	}
}

func TestLoadDefaultsWhenUnset(t *testing.T) {
	svc := NewService(storage.NewMemoryAdapter())
	got := svc.Load(context.Background())

	if got.Model.Value() != model.DefaultModelValue {
		t.Errorf("model = %q, want default", got.Model.Value())
	}
	if got.Credentials.GeminiKey() != "" || got.Credentials.OpenRouterKey() != "" {
		t.Error("default credentials must be empty")
	}
	if got.Extras["theme"] != "system" {
		t.Errorf("extras = %v, want defaults", got.Extras)
	}
}

func TestLoadDefaultsOnReadFailure(t *testing.T) {
	svc := NewService(brokenAdapter{})
	got := svc.Load(context.Background())
	if got.Model.Value() != model.DefaultModelValue {
		t.Errorf("read failure must degrade to defaults, got model %q", got.Model.Value())
	}
}

func TestLoadDefaultsOnCorruptedRecord(t *testing.T) {
	mem := storage.NewMemoryAdapter()
	svc := NewService(mem)
	ctx := context.Background()

	// Corrupt the whole record.
	if err := mem.Set(ctx, "user_settings", "not an object"); err != nil {
		t.Fatal(err)
	}
	got := svc.Load(ctx)
	if got.Model.Value() != model.DefaultModelValue {
		t.Errorf("corrupted record must degrade to defaults, got %q", got.Model.Value())
	}

	// Corrupt only the model field: keys survive, the model falls back.
	if err := mem.Set(ctx, "user_settings", map[string]any{
		"geminiApiKey":      "gem-key",
		"selectedModelInfo": "garbage",
	}); err != nil {
		t.Fatal(err)
	}
	got = svc.Load(ctx)
	if got.Credentials.GeminiKey() != "gem-key" {
		t.Errorf("keys must survive a corrupted model field, got %q", got.Credentials.GeminiKey())
	}
	if got.Model.Value() != model.DefaultModelValue {
		t.Errorf("corrupted model field must fall back, got %q", got.Model.Value())
	}
}

func TestSaveFailurePropagates(t *testing.T) {
	svc := NewService(brokenAdapter{})
	err := svc.Save(context.Background(), credential.New("", ""), selectedModel(t), nil)
	if err == nil {
		t.Error("write failure must propagate")
	}
}
