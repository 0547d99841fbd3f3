package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPickProviderHonorsPreference(t *testing.T) {
	kind, apiKey, ok := PickProvider("openai", "anthropic-key", "openai-key")
	require.True(t, ok)
	require.Equal(t, ProviderOpenAI, kind)
	require.Equal(t, "openai-key", apiKey)

	kind, apiKey, ok = PickProvider("anthropic", "anthropic-key", "openai-key")
	require.True(t, ok)
	require.Equal(t, ProviderAnthropic, kind)
	require.Equal(t, "anthropic-key", apiKey)
}

func TestPickProviderFallsBackToAvailableKey(t *testing.T) {
	kind, apiKey, ok := PickProvider("anthropic", "", "openai-key")
	require.True(t, ok)
	require.Equal(t, ProviderOpenAI, kind)
	require.Equal(t, "openai-key", apiKey)

	kind, apiKey, ok = PickProvider("openai", "anthropic-key", "")
	require.True(t, ok)
	require.Equal(t, ProviderAnthropic, kind)
	require.Equal(t, "anthropic-key", apiKey)
}

func TestPickProviderDefaultsToAnthropic(t *testing.T) {
	kind, _, ok := PickProvider("", "anthropic-key", "openai-key")
	require.True(t, ok)
	require.Equal(t, ProviderAnthropic, kind)

	kind, _, ok = PickProvider("gemini", "anthropic-key", "openai-key")
	require.True(t, ok)
	require.Equal(t, ProviderAnthropic, kind)
}

func TestPickProviderNoKeys(t *testing.T) {
	_, _, ok := PickProvider("anthropic", "", "")
	require.False(t, ok)
}

func TestNewProviderRequiresKey(t *testing.T) {
	_, err := NewProvider(ProviderAnthropic, "")
	require.Error(t, err)

	_, err = NewProvider(ProviderOpenAI, "")
	require.Error(t, err)
}
