// Package credential derives and verifies stored password hashes.
package credential

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultCost        = 12
	DefaultConcurrency = 4
)

var ErrEmptyPassword = errors.New("credential: empty password")

//go:generate mockgen -source=credential.go -destination=mock/credential_mock.go -package=mock

// Manager never returns the raw password and never exposes a hash
// comparison other than Verify.
type Manager interface {
	Derive(ctx context.Context, raw string) (string, error)
	Verify(raw, hashed string) bool
}

type bcryptManager struct {
	cost   int
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// NewBcryptManager bounds concurrent hashing to concurrency slots. Callers
// waiting for a slot give up when their context ends.
func NewBcryptManager(cost, concurrency int, logger ...*zap.Logger) Manager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	l := zap.L().Named("credential.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credential.manager")
	}

	return &bcryptManager{
		cost:   cost,
		sem:    semaphore.NewWeighted(int64(concurrency)),
		logger: l,
	}
}

func (m *bcryptManager) Derive(ctx context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}

	if err := m.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer m.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), m.cost)
	if err != nil {
		m.logger.Warn("failed to derive credential", zap.Error(err))
		return "", err
	}
	return string(hashed), nil
}

func (m *bcryptManager) Verify(raw, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// IsInputError reports whether err was caused by the password itself
// rather than the hashing primitive.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong)
}
