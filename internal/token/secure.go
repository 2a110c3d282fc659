package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dtroode/texcode-accounts/internal/model"
)

const (
	// SecureTokenBytes is the amount of randomness in a secure token.
	SecureTokenBytes = 64
	// DefaultMaxAttempts bounds collision retries.
	DefaultMaxAttempts = 5
)

var errCollision = errors.New("secure token collision")

// SecureGenerator draws random hex tokens and retries on collision.
type SecureGenerator struct {
	rand        io.Reader
	maxAttempts uint64
}

// SecureOption configures SecureGenerator.
type SecureOption func(*SecureGenerator)

// WithRandom replaces the randomness source.
func WithRandom(r io.Reader) SecureOption {
	return func(g *SecureGenerator) {
		g.rand = r
	}
}

// WithMaxAttempts sets how many tokens are drawn before giving up.
func WithMaxAttempts(n uint64) SecureOption {
	return func(g *SecureGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

var _ model.SecureTokenGenerator = (*SecureGenerator)(nil)

// NewSecureGenerator creates a generator reading from crypto/rand.
func NewSecureGenerator(opts ...SecureOption) *SecureGenerator {
	g := &SecureGenerator{
		rand:        rand.Reader,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a token for which taken reports false. After maxAttempts
// collisions it fails with model.ErrTokenExhausted.
func (g *SecureGenerator) Generate(ctx context.Context, taken model.TakenFunc) (string, error) {
	var token string

	backoff := retry.WithMaxRetries(g.maxAttempts-1, retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate, err := g.draw()
		if err != nil {
			return err
		}

		inUse, err := taken(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to check token uniqueness: %w", err)
		}
		if inUse {
			return retry.RetryableError(errCollision)
		}

		token = candidate
		return nil
	})
	if errors.Is(err, errCollision) {
		return "", fmt.Errorf("%w after %d attempts", model.ErrTokenExhausted, g.maxAttempts)
	}
	if err != nil {
		return "", err
	}

	return token, nil
}

func (g *SecureGenerator) draw() (string, error) {
	buf := make([]byte, SecureTokenBytes)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
