package backend

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"delivery-relay/internal/apperr"
)

// TokenSource reads the bearer token from its storage on every request, so a
// token rotated by the login flow is picked up without a restart.
// The file wins over the static token when both are set.
type TokenSource struct {
	path   string
	static string
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenSource returns a source reading path (may be empty) with static as fallback.
func NewTokenSource(path, static string) *TokenSource {
	return &TokenSource{
		path:   strings.TrimSpace(path),
		static: strings.TrimSpace(static),
		now:    time.Now,
		parser: jwt.NewParser(),
	}
}

// Token implements oauth2.TokenSource. Expired JWTs are rejected locally with
// apperr.ErrUnauthorized instead of making a doomed call.
func (s *TokenSource) Token() (*oauth2.Token, error) {
	raw := s.static
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read token storage: %w", err)
		}
		if v := strings.TrimSpace(string(b)); v != "" {
			raw = v
		}
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return nil, fmt.Errorf("%w: no bearer token in storage", apperr.ErrUnauthorized)
	}

	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if exp, ok := s.expiry(raw); ok {
		if !exp.After(s.now()) {
			return nil, fmt.Errorf("%w: session expired at %s", apperr.ErrUnauthorized, exp.UTC().Format(time.RFC3339))
		}
		tok.Expiry = exp
	}
	return tok, nil
}

// expiry reads the exp claim without verifying the signature; the backend
// remains the judge of validity. Opaque tokens report no expiry.
func (s *TokenSource) expiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

var _ oauth2.TokenSource = (*TokenSource)(nil)
