package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by a bearer token.
type Claims struct {
	AccountID int64  `json:"account_id"`
	Document  string `json:"document"`
	RoleID    int64  `json:"role_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	// now is replaceable in tests
	now func() time.Time
}

// NewTokenService creates a token service with the given signing secret and
// token time-to-live.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue produces a signed token embedding the account identity and role,
// expiring after the configured TTL.
func (s *TokenService) Issue(accountID int64, document string, roleID int64) (string, error) {
	now := s.now()
	claims := &Claims{
		AccountID: accountID,
		Document:  document,
		RoleID:    roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string. Expired tokens return
// ErrExpiredToken; every other failure, including malformed input, maps to
// ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractFromHeader parses an Authorization header value in the form
// "Bearer <token>". An absent or malformed header returns the empty string;
// that is a normal caller state, not an error.
func ExtractFromHeader(headerValue string) string {
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return ""
	}
	return parts[1]
}
