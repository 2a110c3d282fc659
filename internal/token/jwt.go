package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// SessionTTL is the lifetime of a session token.
const SessionTTL = 7 * 24 * time.Hour

// Claims carries the single identity claim of a session token.
type Claims struct {
	jwt.RegisteredClaims
	ID string `json:"id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
// The secret is fixed at construction.
type JWT struct {
	secretKey []byte
	now       func() time.Time
}

// Option configures JWT.
type Option func(*JWT)

// WithClock overrides the time source used for issuance and validation.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateSessionToken creates a token for principalID valid for SessionTTL.
func (j *JWT) GenerateSessionToken(principalID int64) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		ID: strconv.FormatInt(principalID, 10),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken verifies signature and expiry with no leeway and returns
// the principal id.
func (j *JWT) ParseSessionToken(tokenString string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return 0, model.ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed id claim %q: %w", claims.ID, model.ErrInvalidToken)
	}

	return id, nil
}
