/*
Package resilience provides a circuit breaker for remote storage backends.

# Overview

A snapshot write that hangs on an unreachable bucket or database blocks the
file store lock for its whole duration. The breaker counts consecutive
failures and, once the threshold is reached, rejects calls with
ErrCircuitOpen until a cooldown has passed. The first call after the
cooldown is a probe: success closes the breaker, failure reopens it.

# States

	Closed    calls pass through; failures are counted
	Open      calls fail fast with ErrCircuitOpen
	Half-Open one probe is admitted, the rest fail fast

# Usage

	breaker := resilience.New("s3", resilience.Settings{
		FailureThreshold: 3,
		Cooldown:         10 * time.Second,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, storage.ErrNotFound)
		},
	})

	err := breaker.Do(func() error {
		return kv.Put(ctx, key, value)
	})
*/
package resilience
