// Package identity turns player bearer tokens into usernames.
//
// Tokens are HS256 JWTs. The username is read from the unique_name claim
// ASP.NET issuers write, falling back to sub.
package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/seabattle/internal/platform/errors"
)

// MinKeyBytes is the shortest HMAC key the resolver accepts.
const MinKeyBytes = 16

// ErrKeyRequired indicates a missing or short signing key.
var ErrKeyRequired = fmt.Errorf("token key of at least %d bytes is required", MinKeyBytes)

// Resolver maps a token to the player username it was issued for.
type Resolver interface {
	Resolve(token string) (string, error)
}

type claims struct {
	jwt.RegisteredClaims
	UniqueName string `json:"unique_name,omitempty"`
}

// HMACResolver verifies HS256 tokens with a shared key.
type HMACResolver struct {
	key []byte
	now func() time.Time
}

// ParseKey decodes a hex key as printed by hmac-key, or uses the raw bytes
// of a plain secret.
func ParseKey(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	key, err := hex.DecodeString(value)
	if err != nil {
		key = []byte(value)
	}
	if len(key) < MinKeyBytes {
		return nil, ErrKeyRequired
	}
	return key, nil
}

// NewHMACResolver builds a resolver for key. A nil now uses time.Now.
func NewHMACResolver(key []byte, now func() time.Time) (*HMACResolver, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyRequired
	}
	if now == nil {
		now = time.Now
	}
	return &HMACResolver{key: append([]byte(nil), key...), now: now}, nil
}

// Resolve returns the username of a valid token. Every failure is
// INVALID_TOKEN.
func (r *HMACResolver) Resolve(token string) (string, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return "", apperrors.New(apperrors.CodeInvalidToken, "token is required")
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return r.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return "", mapJWTError(err)
	}

	username := strings.TrimSpace(parsed.UniqueName)
	if username == "" {
		username = strings.TrimSpace(parsed.Subject)
	}
	if username == "" {
		return "", apperrors.New(apperrors.CodeInvalidToken, "token carries no username")
	}
	return username, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token is expired", err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token is not active yet", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token alg is invalid", err)
	default:
		return apperrors.Wrap(apperrors.CodeInvalidToken, "token is invalid", err)
	}
}

// Issuer mints player tokens for local play and tests.
type Issuer struct {
	key []byte
	now func() time.Time
	ttl time.Duration
}

// NewIssuer builds an issuer. A zero ttl issues tokens without expiry.
func NewIssuer(key []byte, ttl time.Duration, now func() time.Time) (*Issuer, error) {
	if len(key) < MinKeyBytes {
		return nil, ErrKeyRequired
	}
	if now == nil {
		now = time.Now
	}
	return &Issuer{key: append([]byte(nil), key...), now: now, ttl: ttl}, nil
}

// Issue signs a token for username.
func (i *Issuer) Issue(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", errors.New("username is required")
	}
	issuedAt := i.now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		UniqueName: username,
	}
	if i.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(i.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
