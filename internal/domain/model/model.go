// Package model defines the model-identifier value object and its provider
// routing rules.
package model

import (
	"encoding/json"
	"fmt"
	"strings"

	decimal "github.com/shopspring/decimal"

	"chapter-api/internal/domain/domainerrors"
)

// DefaultModelValue is the model substituted when persisted settings are
// missing or corrupted. Deserialization must always yield a usable model, so
// a broken settings store degrades to this free aggregator model instead of
// blocking generation entirely.
const DefaultModelValue = "deepseek/deepseek-chat-v3-0324:free"

// ModelID identifies an AI model: an opaque id, the provider that serves it,
// and optional pricing. Immutable; edits construct new values.
type ModelID struct {
	value    string
	provider string
	pricing  *Pricing
}

// New constructs a ModelID, rejecting empty id or provider.
func New(id, provider string, pricing *Pricing) (ModelID, error) {
	if strings.TrimSpace(id) == "" {
		return ModelID{}, &domainerrors.ValidationError{Field: "id", Message: "model id must be a non-empty string"}
	}
	if strings.TrimSpace(provider) == "" {
		return ModelID{}, &domainerrors.ValidationError{Field: "provider", Message: "provider must be a non-empty string"}
	}
	return ModelID{value: id, provider: provider, pricing: clonePricing(pricing)}, nil
}

// DefaultModelID returns the fixed fallback model: a known free OpenRouter
// model with zero pricing.
func DefaultModelID() ModelID {
	return ModelID{
		value:    DefaultModelValue,
		provider: ProviderOpenRouter,
		pricing:  &Pricing{Prompt: "0", Completion: "0"},
	}
}

func clonePricing(p *Pricing) *Pricing {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Value returns the opaque model id.
func (m ModelID) Value() string { return m.value }

// Provider returns the provider name.
func (m ModelID) Provider() string { return m.provider }

// PricingInfo returns a copy of the pricing, or nil when absent.
func (m ModelID) PricingInfo() *Pricing { return clonePricing(m.pricing) }

// IsZero reports whether the ModelID was never constructed.
func (m ModelID) IsZero() bool { return m.value == "" && m.provider == "" }

// Route returns the backend this model dispatches to.
func (m ModelID) Route() Route { return RouteForProvider(m.provider) }

// IsGemini reports whether the model is served by the direct provider.
func (m ModelID) IsGemini() bool { return m.Route() == RouteDirect }

// IsOpenRouter reports whether the model is served by the aggregator.
func (m ModelID) IsOpenRouter() bool { return m.Route() == RouteAggregated }

// IsFree reports whether pricing exists and both costs are zero.
func (m ModelID) IsFree() bool { return m.pricing.IsFree() }

// RequiresAPIKey reports whether calling the model needs a configured key:
// always for the direct provider, for paid models on the aggregator.
// The credential compatibility check (Credentials.CanUse) is stricter and
// requires a key for free aggregator models too.
func (m ModelID) RequiresAPIKey() bool {
	switch m.Route() {
	case RouteDirect:
		return true
	case RouteAggregated:
		return !m.IsFree()
	default:
		return false
	}
}

// familyNames maps the first hyphen-delimited id component onto its branded
// spelling.
var familyNames = map[string]string{
	"gemini":   "Gemini",
	"gemma":    "Gemma",
	"deepseek": "DeepSeek",
	"llama":    "Llama",
	"mistral":  "Mistral",
	"mixtral":  "Mixtral",
	"qwen":     "Qwen",
	"gpt":      "GPT",
	"claude":   "Claude",
}

// DisplayName derives a human label from the id: the path prefix and any
// ":variant" tag are dropped, the family component is mapped onto its
// branded spelling, remaining components are title-cased, and a "(Free)" or
// tokens-per-cent pricing annotation is appended.
func (m ModelID) DisplayName() string {
	name := m.value
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}

	parts := strings.Split(name, "-")
	if mapped, ok := familyNames[strings.ToLower(parts[0])]; ok {
		parts[0] = mapped
	} else {
		parts[0] = titleCase(parts[0])
	}
	for i := 1; i < len(parts); i++ {
		parts[i] = titleCase(parts[i])
	}
	label := strings.Join(parts, " ")

	if m.IsFree() {
		return label + " (Free)"
	}
	if annotation := m.pricingAnnotation(); annotation != "" {
		return label + " " + annotation
	}
	return label
}

// pricingAnnotation renders non-zero pricing as tokens-per-cent: "(N)" when
// prompt and completion costs match, "(N/M)" otherwise.
func (m ModelID) pricingAnnotation() string {
	if m.pricing == nil {
		return ""
	}
	prompt, promptErr := decimal.NewFromString(m.pricing.Prompt)
	completion, completionErr := decimal.NewFromString(m.pricing.Completion)
	if promptErr != nil || completionErr != nil {
		return ""
	}
	if prompt.IsZero() && completion.IsZero() {
		return ""
	}
	promptRate := tokensPerCent(m.pricing.Prompt)
	completionRate := tokensPerCent(m.pricing.Completion)
	if prompt.Equal(completion) {
		return fmt.Sprintf("(%s)", promptRate.String())
	}
	return fmt.Sprintf("(%s/%s)", promptRate.String(), completionRate.String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type modelJSON struct {
	Value    string   `json:"value"`
	Provider string   `json:"provider"`
	Pricing  *Pricing `json:"pricing,omitempty"`
}

// MarshalJSON serializes the model as {value, provider, pricing}.
func (m ModelID) MarshalJSON() ([]byte, error) {
	return json.Marshal(modelJSON{
		Value:    m.value,
		Provider: m.provider,
		Pricing:  m.pricing,
	})
}

// FromJSON reconstructs a ModelID from its persisted form. It never fails:
// any malformed input, including null, non-object data or missing fields,
// yields DefaultModelID. Persisted settings corruption therefore costs the
// user their model selection, never their ability to generate.
func FromJSON(data json.RawMessage) ModelID {
	var raw modelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return DefaultModelID()
	}
	parsed, err := New(raw.Value, raw.Provider, raw.Pricing)
	if err != nil {
		return DefaultModelID()
	}
	return parsed
}
