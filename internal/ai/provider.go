// Package ai is the provider-agnostic classification gateway: two
// interchangeable backends, each with a fast and a precise model tier,
// behind a single-owner service that handles retries, backoff, and
// fallback.
package ai

// Provider identifies an AI backend.
type Provider string

// The two interchangeable providers.
const (
	ProviderClaude Provider = "claude"
	ProviderGemini Provider = "gemini"
)

// ModelTier selects the speed/quality tradeoff for a request.
type ModelTier string

// Model tiers. Fast models handle bulk classification; precise models are
// reserved for summaries and harder calls.
const (
	TierFast    ModelTier = "fast"
	TierPrecise ModelTier = "precise"
)

// providerModels binds each provider's model identifiers per tier.
var providerModels = map[Provider]map[ModelTier]string{
	ProviderClaude: {
		TierFast:    "claude-3-5-haiku-20241022",
		TierPrecise: "claude-3-7-sonnet-20250219",
	},
	ProviderGemini: {
		TierFast:    "gemini-2.0-flash",
		TierPrecise: "gemini-2.5-pro",
	},
}

// credentialAccounts names each provider's entry in the credential store.
var credentialAccounts = map[Provider]string{
	ProviderClaude: "anthropic-api-key",
	ProviderGemini: "gemini-api-key",
}

// Model returns the provider's model identifier for the given tier.
func (p Provider) Model(tier ModelTier) string {
	return providerModels[p][tier]
}

// CredentialAccount returns the provider's account name in the credential store.
func (p Provider) CredentialAccount() string {
	return credentialAccounts[p]
}

// Alternate returns the other provider, used for fallback.
func (p Provider) Alternate() Provider {
	if p == ProviderClaude {
		return ProviderGemini
	}
	return ProviderClaude
}

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	_, ok := providerModels[p]
	return ok
}

// Tier resolves which tier a model identifier belongs to for this provider,
// so a fallback request can use the equivalent tier on the other provider.
func (p Provider) Tier(modelID string) ModelTier {
	if providerModels[p][TierPrecise] == modelID {
		return TierPrecise
	}
	return TierFast
}
