package link_test

import (
	"strings"
	"testing"

	"github.com/serroba/linkshort/internal/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func TestNewGenerator(t *testing.T) {
	t.Run("produces identifiers of the requested length", func(t *testing.T) {
		generate, err := link.NewGenerator(6)
		require.NoError(t, err)

		for range 100 {
			assert.Len(t, generate(), 6)
		}
	})

	t.Run("only emits alphanumeric characters", func(t *testing.T) {
		generate, err := link.NewGenerator(6)
		require.NoError(t, err)

		for range 100 {
			id := generate()
			for _, c := range id {
				assert.True(t, strings.ContainsRune(alphanumeric, c), "unexpected character %q in %q", c, id)
			}
		}
	})

	t.Run("successive identifiers differ", func(t *testing.T) {
		generate, err := link.NewGenerator(6)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for range 100 {
			seen[generate()] = true
		}

		assert.Greater(t, len(seen), 90)
	})

	t.Run("rejects a non-positive length", func(t *testing.T) {
		_, err := link.NewGenerator(0)
		assert.Error(t, err)
	})
}
