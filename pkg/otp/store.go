package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

var (
	// ErrNotFound covers both "never requested" and "expired" entries.
	ErrNotFound = errors.New("otp not found")
)

// Entry is a stored one-time code with the number of failed verification
// attempts so far.
type Entry struct {
	Code     string
	Attempts int
}

// Store is an expiring-entry key-value abstraction for one-time codes, keyed
// by email. Injected so the reset flow owns no process-wide mutable state.
type Store interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (Entry, error)
	// RecordFailure bumps the attempt counter and returns the new value.
	RecordFailure(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

// GenerateCode returns a random 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := n.Int64() + 100000
	return big.NewInt(code).String(), nil
}
