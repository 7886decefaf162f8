package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/resilience"
)

// GuardedKV fails fast while its breaker is open. A missing slot is an
// answer from the backend and does not count as a failure.
type GuardedKV struct {
	kv      KV
	breaker *resilience.Breaker
}

// Guard wraps kv with a breaker built from settings.
func Guard(kv KV, name string, settings resilience.Settings) *GuardedKV {
	settings.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, ErrNotFound)
	}
	return &GuardedKV{kv: kv, breaker: resilience.New(name, settings)}
}

// Breaker exposes the breaker state.
func (g *GuardedKV) Breaker() *resilience.Breaker {
	return g.breaker
}

// Get reads through the breaker.
func (g *GuardedKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := g.breaker.Do(func() error {
		var err error
		value, err = g.kv.Get(ctx, key)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("get slot %s: %w", key, err)
	}
	return value, err
}

// Put writes through the breaker.
func (g *GuardedKV) Put(ctx context.Context, key string, value []byte) error {
	err := g.breaker.Do(func() error {
		return g.kv.Put(ctx, key, value)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return err
}

// Close closes the wrapped backend if it holds resources.
func (g *GuardedKV) Close() error {
	if c, ok := g.kv.(Closer); ok {
		return c.Close()
	}
	return nil
}
