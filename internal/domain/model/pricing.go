package model

import (
	"math"

	decimal "github.com/shopspring/decimal"
)

// Pricing carries the per-token prompt and completion costs as the numeric
// strings the aggregator's catalog reports them in. Parsing is deferred so a
// malformed cost degrades a single derived check instead of the whole model.
type Pricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// IsFree reports whether both costs are present and parse to exactly zero.
func (p *Pricing) IsFree() bool {
	if p == nil {
		return false
	}
	prompt, err := decimal.NewFromString(p.Prompt)
	if err != nil {
		return false
	}
	completion, err := decimal.NewFromString(p.Completion)
	if err != nil {
		return false
	}
	return prompt.IsZero() && completion.IsZero()
}

// tokensPerCent converts a per-token cost into "tokens you get for one cent",
// floored to two significant digits. Returns zero for absent or non-positive
// costs.
func tokensPerCent(cost string) decimal.Decimal {
	price, err := decimal.NewFromString(cost)
	if err != nil || !price.IsPositive() {
		return decimal.Zero
	}
	rate := decimal.NewFromFloat(0.01).Div(price)
	return floorToTwoSignificant(rate)
}

func floorToTwoSignificant(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	f, _ := d.Float64()
	exponent := int32(math.Floor(math.Log10(f)))
	return d.RoundFloor(1 - exponent)
}
