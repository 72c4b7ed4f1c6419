package session

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"draftkit/internal/apperr"
	"draftkit/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	keyring.MockInit()
	return NewManager(config.DataPaths{Root: t.TempDir()})
}

func TestSaveAndLoad(t *testing.T) {
	m := testManager(t)

	expires := time.Now().Add(7 * 24 * time.Hour).Unix()
	require.NoError(t, m.Save(&Session{
		Cookie:    "eyJpdiI6long-opaque-cookie-value",
		ExpiresAt: expires,
		Domain:    "tailwindcss.com",
	}))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "eyJpdiI6long-opaque-cookie-value", loaded.Cookie)
	assert.Equal(t, expires, loaded.ExpiresAt)
	assert.Equal(t, "tailwindcss.com", loaded.Domain)
	assert.True(t, m.Exists())
}

func TestSave_EmptyCookie(t *testing.T) {
	m := testManager(t)

	err := m.Save(&Session{Domain: "tailwindcss.com"})
	assert.True(t, apperr.IsInvalidInput(err))
}

func TestSave_CookieNeverOnDisk(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Save(&Session{Cookie: "secret-cookie-value", Domain: "tailwindcss.com"}))

	data, err := os.ReadFile(m.paths.SessionFile())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-cookie-value")
	assert.Contains(t, string(data), sessionCookieKey)
}

func TestLoad_NotAuthenticated(t *testing.T) {
	m := testManager(t)

	_, err := m.Load()
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, m.Exists())
}

func TestLoad_CookieMissingFromStore(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Save(&Session{Cookie: "value", Domain: "tailwindcss.com"}))
	require.NoError(t, keyring.Delete(m.service, sessionCookieKey))

	_, err := m.Load()
	assert.True(t, apperr.IsNotFound(err))
}

func TestClear(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Save(&Session{Cookie: "value", Domain: "tailwindcss.com"}))
	require.NoError(t, m.Clear())

	assert.False(t, m.Exists())
	_, err := m.Load()
	assert.True(t, apperr.IsNotFound(err))

	// Clearing twice is fine.
	require.NoError(t, m.Clear())
}

func TestSession_Expiry(t *testing.T) {
	now := time.Now().Unix()

	expired := &Session{Cookie: "x", ExpiresAt: now - 60}
	assert.True(t, expired.IsExpired())
	assert.True(t, expired.IsExpiringSoon())

	soon := &Session{Cookie: "x", ExpiresAt: now + 12*60*60}
	assert.False(t, soon.IsExpired())
	assert.True(t, soon.IsExpiringSoon())

	later := &Session{Cookie: "x", ExpiresAt: now + 48*60*60}
	assert.False(t, later.IsExpired())
	assert.False(t, later.IsExpiringSoon())

	// Browser-lifetime cookie with no recorded expiry.
	unknown := &Session{Cookie: "x"}
	assert.False(t, unknown.IsExpired())
	assert.False(t, unknown.IsExpiringSoon())
}
