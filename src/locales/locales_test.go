package locales

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextLocalized(t *testing.T) {
	require.Equal(t, "Welcome to Thronos Chain!", Text("welcome", English))
	require.Equal(t, "Καλώς ήρθατε στο Thronos Chain!", Text("welcome", Greek))
	require.Equal(t, "Thronos Chainへようこそ！", Text("welcome", Japanese))
}

func TestTextFallsBackToDefault(t *testing.T) {
	// Unknown language falls back to the default locale.
	require.Equal(t, Text("welcome", English), Text("welcome", "FR"))

	// Unknown key falls through to the key itself.
	require.Equal(t, "no_such_key", Text("no_such_key", English))
	require.Equal(t, "no_such_key", Text("no_such_key", Russian))
}

func TestEveryLocaleCoversEveryKey(t *testing.T) {
	reference := tables[DefaultLocale]
	for lang, table := range tables {
		for key := range reference {
			_, ok := table[key]
			require.True(t, ok, "locale %s missing key %s", lang, key)
		}
	}
}
