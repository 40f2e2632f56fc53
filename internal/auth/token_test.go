package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	t.Run("Missing file means no token", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "nested", "token.json"))

		token, err := s.Token()
		assert.NoError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Set then read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		s := NewFileStore(path)

		require.NoError(t, s.SetToken("abc"))

		token, err := NewFileStore(path).Token()
		require.NoError(t, err)
		assert.Equal(t, "abc", token)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"accessToken":"abc"}`, string(raw))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Clear keeps other keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"accessToken":"abc","theme":"light"}`), 0o600))
		s := NewFileStore(path)

		require.NoError(t, s.Clear())

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"theme":"light"}`, string(raw))
		assert.NoError(t, NewFileStore(filepath.Join(t.TempDir(), "none.json")).Clear())
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

		_, err := NewFileStore(path).Token()
		assert.Error(t, err)
	})
}

func TestMemoryStore(t *testing.T) {
	s := &MemoryStore{}
	require.NoError(t, s.SetToken("t1"))

	token, _ := s.Token()
	assert.Equal(t, "t1", token)

	require.NoError(t, s.Clear())
	token, _ = s.Token()
	assert.Empty(t, token)
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenKey, Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: TokenKey, Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		assert.Empty(t, ExtractAccessToken(req))
	})
}
