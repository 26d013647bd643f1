package model

// Known provider names. Matching is exact: unknown providers are tolerated
// in a ModelID but never satisfy provider-specific checks.
const (
	ProviderGemini     = "Gemini"
	ProviderOpenRouter = "OpenRouter"
)

// Route identifies which backend a model dispatches to. Exhaustive switching
// on Route keeps provider dispatch a compile-time-checked concern; adding a
// backend means adding a Route value and handling it everywhere the compiler
// complains.
type Route int

const (
	RouteUnsupported Route = iota
	RouteDirect            // Gemini: API-key-in-URL, fixed catalog
	RouteAggregated        // OpenRouter: bearer token, live catalog
)

func (r Route) String() string {
	switch r {
	case RouteDirect:
		return "direct"
	case RouteAggregated:
		return "aggregated"
	default:
		return "unsupported"
	}
}

// RouteForProvider maps a provider name onto its backend route.
func RouteForProvider(provider string) Route {
	switch provider {
	case ProviderGemini:
		return RouteDirect
	case ProviderOpenRouter:
		return RouteAggregated
	default:
		return RouteUnsupported
	}
}
