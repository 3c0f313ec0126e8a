package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CookieStore {
	t.Helper()

	return NewCookieStore(filepath.Join(t.TempDir(), "hexsession"))
}

func TestCookieStoreRoundTrip(t *testing.T) {
	t.Run("Success - Write then read", func(t *testing.T) {
		// Arrange
		store := newTestStore(t)

		// Act
		err := store.WriteToken("abc123", time.Now().Add(24*time.Hour))
		require.NoError(t, err)

		token, err := store.ReadToken()

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "abc123", token)
	})

	t.Run("Success - Missing file reads as no token", func(t *testing.T) {
		// Arrange
		store := newTestStore(t)

		// Act
		token, err := store.ReadToken()

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Success - Expired record reads as no token", func(t *testing.T) {
		// Arrange
		store := newTestStore(t)
		require.NoError(t, store.WriteToken("stale", time.Now().Add(-time.Hour)))

		// Act
		token, err := store.ReadToken()

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Success - Clear removes the record", func(t *testing.T) {
		// Arrange
		store := newTestStore(t)
		require.NoError(t, store.WriteToken("abc123", time.Now().Add(time.Hour)))

		// Act
		require.NoError(t, store.Clear())
		token, err := store.ReadToken()

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Success - Clear on missing file is a no-op", func(t *testing.T) {
		store := newTestStore(t)

		assert.NoError(t, store.Clear())
	})
}

func TestParseCookie(t *testing.T) {
	t.Run("Success - Full record", func(t *testing.T) {
		token, expires := parseCookie("hexToken=abc123; expires=Sat, 01 Jan 2033 00:00:00 UTC; path=/")

		assert.Equal(t, "abc123", token)
		assert.Equal(t, 2033, expires.Year())
	})

	t.Run("Success - Attributes without separator are skipped", func(t *testing.T) {
		token, _ := parseCookie("garbage; hexToken=tok")

		assert.Equal(t, "tok", token)
	})

	t.Run("Success - Unparseable expiry is ignored", func(t *testing.T) {
		token, expires := parseCookie("hexToken=tok; expires=not-a-date")

		assert.Equal(t, "tok", token)
		assert.True(t, expires.IsZero())
	})

	t.Run("Success - Empty record yields nothing", func(t *testing.T) {
		token, expires := parseCookie("")

		assert.Empty(t, token)
		assert.True(t, expires.IsZero())
	})
}

func TestCookieStoreReadError(t *testing.T) {
	// A directory at the cookie path is unreadable as a file.
	dir := t.TempDir()
	store := NewCookieStore(dir)

	_, err := store.ReadToken()

	assert.Error(t, err)
	_ = os.Remove(dir)
}
