package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/i18n"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "pl", "de"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty header falls back to first", "", "en"},
		{"exact match", "pl", "pl"},
		{"quality ordering", "de;q=0.7,pl;q=0.9", "pl"},
		{"region variant matches base", "en-US,en;q=0.9", "en"},
		{"unsupported language falls back", "fr,es;q=0.8", "en"},
		{"wildcard falls back to first", "*", "en"},
		{"malformed header falls back", ";;;", "en"},
		{"case insensitive", "PL", "pl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, i18n.Negotiate(tt.header, supported))
		})
	}

	t.Run("no supported locales", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, i18n.Negotiate("en", nil))
	})

	t.Run("unparsable supported entry does not skew the match", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "fr", i18n.Negotiate("fr", []string{"bad!locale", "en", "fr"}))
	})

	t.Run("all supported entries unparsable falls back to first", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "bad!", i18n.Negotiate("en", []string{"bad!", "also bad"}))
	})
}
