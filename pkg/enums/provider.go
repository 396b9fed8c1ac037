package enums

import "fmt"

// Provider identifies an image-generation backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderQwen   Provider = "qwen"
)

var validProviders = []Provider{
	ProviderOpenAI,
	ProviderGemini,
	ProviderQwen,
}

// Providers returns the closed set of known providers in declaration order.
func Providers() []Provider {
	return append([]Provider(nil), validProviders...)
}

// IsValid reports whether the value matches the canonical provider enum.
func (p Provider) IsValid() bool {
	for _, candidate := range validProviders {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProvider converts the raw string to Provider.
func ParseProvider(value string) (Provider, error) {
	for _, candidate := range validProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid provider %q", value)
}
