package services

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrConfigNotFound is returned when a system_config key is missing.
var ErrConfigNotFound = errors.New("config key not found")

// ConfigService reads the system_config table. The waiter PIN is cached
// after the first successful read, like the original client did.
type ConfigService struct {
	pool *pgxpool.Pool

	mu        sync.Mutex
	cachedPin string
}

func NewConfigService(pool *pgxpool.Pool) *ConfigService {
	return &ConfigService{pool: pool}
}

// Get returns the value for a system_config key.
func (s *ConfigService) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM system_config WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrConfigNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// VerifyPin checks a submitted PIN against the stored waiter PIN. A plain
// string compare, nothing more: there is no token issuance or hashing in
// this system.
func (s *ConfigService) VerifyPin(ctx context.Context, pin string) (bool, error) {
	s.mu.Lock()
	cached := s.cachedPin
	s.mu.Unlock()

	if cached == "" {
		value, err := s.Get(ctx, "waiter_pin")
		if err != nil {
			return false, err
		}
		s.mu.Lock()
		s.cachedPin = value
		s.mu.Unlock()
		cached = value
	}

	return pin == cached, nil
}
