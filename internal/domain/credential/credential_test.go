package credential

import (
	"testing"

	"chapter-api/internal/domain/model"
)

func mustModel(t *testing.T, id, provider string, pricing *model.Pricing) model.ModelID {
	t.Helper()
	m, err := model.New(id, provider, pricing)
	if err != nil {
		t.Fatalf("model.New(%q, %q): %v", id, provider, err)
	}
	return m
}

func TestNewTrimsKeys(t *testing.T) {
	c := New("  gem-key  ", "\tor-key\n")
	if c.GeminiKey() != "gem-key" {
		t.Errorf("GeminiKey() = %q, want %q", c.GeminiKey(), "gem-key")
	}
	if c.OpenRouterKey() != "or-key" {
		t.Errorf("OpenRouterKey() = %q, want %q", c.OpenRouterKey(), "or-key")
	}
}

func TestWhitespaceKeyCountsAsAbsent(t *testing.T) {
	c := New("   ", "")
	gemini := mustModel(t, "gemini-2.5-pro", model.ProviderGemini, nil)
	if c.CanUse(gemini) {
		t.Error("whitespace-only key must not satisfy CanUse")
	}
	if c.KeyFor(gemini) != "" {
		t.Errorf("KeyFor() = %q, want empty", c.KeyFor(gemini))
	}
}

func TestCanUse(t *testing.T) {
	gemini := mustModel(t, "gemini-2.5-flash", model.ProviderGemini, nil)
	freeRouted := mustModel(t, "deepseek/deepseek-chat-v3-0324:free", model.ProviderOpenRouter,
		&model.Pricing{Prompt: "0", Completion: "0"})
	paidRouted := mustModel(t, "anthropic/claude-sonnet-4", model.ProviderOpenRouter,
		&model.Pricing{Prompt: "0.000003", Completion: "0.000015"})
	unknown := mustModel(t, "sonar-pro", "Perplexity", nil)

	tests := []struct {
		name  string
		creds Credentials
		m     model.ModelID
		want  bool
	}{
		{"gemini key present", New("key", ""), gemini, true},
		{"gemini key absent", New("", "key"), gemini, false},
		{"free routed still needs key", New("", ""), freeRouted, false},
		{"free routed with key", New("", "key"), freeRouted, true},
		{"paid routed with key", New("", "key"), paidRouted, true},
		{"paid routed without key", New("key", ""), paidRouted, false},
		{"unknown provider never usable", New("key", "key"), unknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.CanUse(tt.m); got != tt.want {
				t.Errorf("CanUse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyForSelectsByProvider(t *testing.T) {
	c := New("gem", "or")
	gemini := mustModel(t, "gemini-2.5-pro", model.ProviderGemini, nil)
	routed := mustModel(t, "qwen/qwen-2.5-72b", model.ProviderOpenRouter, nil)

	if got := c.KeyFor(gemini); got != "gem" {
		t.Errorf("KeyFor(gemini) = %q, want %q", got, "gem")
	}
	if got := c.KeyFor(routed); got != "or" {
		t.Errorf("KeyFor(routed) = %q, want %q", got, "or")
	}
}

func TestWithKeyReturnsCopy(t *testing.T) {
	base := New("gem", "or")
	updated := base.WithGeminiKey("new-gem").WithOpenRouterKey("  new-or ")

	if base.GeminiKey() != "gem" || base.OpenRouterKey() != "or" {
		t.Error("With* must not mutate the receiver")
	}
	if updated.GeminiKey() != "new-gem" {
		t.Errorf("GeminiKey() = %q, want %q", updated.GeminiKey(), "new-gem")
	}
	if updated.OpenRouterKey() != "new-or" {
		t.Errorf("OpenRouterKey() = %q, want %q", updated.OpenRouterKey(), "new-or")
	}
}
