package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"delivery-relay/internal/apperr"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "merchant@shop.cm",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestTokenSource_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewTokenSource("", "  ").Token()
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTokenSource_OpaqueStatic(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenSource("", "Bearer opaque-123").Token()
	require.NoError(t, err)
	require.Equal(t, "opaque-123", tok.AccessToken)
	require.True(t, tok.Expiry.IsZero())
}

func TestTokenSource_FileWinsAndIsReread(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))

	ts := NewTokenSource(path, "static")
	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "first", tok.AccessToken)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	tok, err = ts.Token()
	require.NoError(t, err)
	require.Equal(t, "second", tok.AccessToken)
}

func TestTokenSource_MissingFileFallsBackToStatic(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenSource(filepath.Join(t.TempDir(), "absent"), "static").Token()
	require.NoError(t, err)
	require.Equal(t, "static", tok.AccessToken)
}

func TestTokenSource_JWTExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	valid := NewTokenSource("", signed(t, now.Add(time.Hour)))
	valid.now = func() time.Time { return now }
	tok, err := valid.Token()
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour).Unix(), tok.Expiry.Unix())

	expired := NewTokenSource("", signed(t, now.Add(-time.Minute)))
	expired.now = func() time.Time { return now }
	_, err = expired.Token()
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}
