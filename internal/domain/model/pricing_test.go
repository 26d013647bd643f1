package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingIsFree(t *testing.T) {
	tests := []struct {
		name    string
		pricing *Pricing
		want    bool
	}{
		{"nil pricing", nil, false},
		{"both zero", &Pricing{Prompt: "0", Completion: "0"}, true},
		{"decimal zero", &Pricing{Prompt: "0.000000", Completion: "0"}, true},
		{"paid prompt", &Pricing{Prompt: "0.000002", Completion: "0"}, false},
		{"paid completion", &Pricing{Prompt: "0", Completion: "0.000001"}, false},
		{"empty strings", &Pricing{}, false},
		{"malformed prompt", &Pricing{Prompt: "free", Completion: "0"}, false},
		{"malformed completion", &Pricing{Prompt: "0", Completion: "n/a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pricing.IsFree())
		})
	}
}

func TestTokensPerCent(t *testing.T) {
	tests := []struct {
		name string
		cost string
		want string
	}{
		{"two micro-dollars", "0.000002", "5000"},
		{"typical paid rate", "0.0000003", "33000"},
		{"one micro-dollar", "0.000001", "10000"},
		{"zero cost", "0", "0"},
		{"negative cost", "-0.000001", "0"},
		{"malformed cost", "cheap", "0"},
		{"empty cost", "", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokensPerCent(tt.cost)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFloorToTwoSignificantIsStable(t *testing.T) {
	// Re-flooring an already floored value must not change it, otherwise
	// display names would drift between catalog refreshes.
	got := tokensPerCent("0.000002")
	require.Equal(t, got.String(), floorToTwoSignificant(got).String())
}
