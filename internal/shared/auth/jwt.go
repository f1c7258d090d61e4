package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal carried by a bearer token.
type Identity struct {
	UserID string
	Email  string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 bearer tokens. Construct one at startup
// and share it; the secret is never read from the environment here.
type Tokens struct {
	secret  []byte
	expires time.Duration
}

// NewTokens creates a token signer with the given secret and lifetime.
func NewTokens(secret string, expires time.Duration) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if expires <= 0 {
		expires = 7 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), expires: expires}, nil
}

// Sign issues a token embedding the user id and email.
func (t *Tokens) Sign(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now().UTC()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expires)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a token and returns the identity it carries.
func (t *Tokens) Verify(raw string) (Identity, error) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
