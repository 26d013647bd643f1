// Package credential holds the per-provider API key set and answers which
// models those keys can reach.
package credential

import (
	"strings"

	"chapter-api/internal/domain/model"
)

// Credentials is an immutable set of provider API keys. Keys are normalized
// on construction; whitespace-only input counts as absent.
type Credentials struct {
	geminiKey     string
	openRouterKey string
}

// New builds a Credentials set from raw key strings.
func New(geminiKey, openRouterKey string) Credentials {
	return Credentials{
		geminiKey:     strings.TrimSpace(geminiKey),
		openRouterKey: strings.TrimSpace(openRouterKey),
	}
}

// GeminiKey returns the direct-provider key, or "" when unset.
func (c Credentials) GeminiKey() string { return c.geminiKey }

// OpenRouterKey returns the aggregator key, or "" when unset.
func (c Credentials) OpenRouterKey() string { return c.openRouterKey }

// KeyFor returns the key matching the model's provider. Unknown providers
// yield "".
func (c Credentials) KeyFor(m model.ModelID) string {
	switch m.Route() {
	case model.RouteDirect:
		return c.geminiKey
	case model.RouteAggregated:
		return c.openRouterKey
	default:
		return ""
	}
}

// CanUse reports whether the set holds a key for the model's provider. The
// check is strict: free aggregator models still require an aggregator key
// here, and unknown providers are never usable.
func (c Credentials) CanUse(m model.ModelID) bool {
	return c.KeyFor(m) != ""
}

// WithGeminiKey returns a copy with the direct-provider key replaced.
func (c Credentials) WithGeminiKey(key string) Credentials {
	c.geminiKey = strings.TrimSpace(key)
	return c
}

// WithOpenRouterKey returns a copy with the aggregator key replaced.
func (c Credentials) WithOpenRouterKey(key string) Credentials {
	c.openRouterKey = strings.TrimSpace(key)
	return c
}
