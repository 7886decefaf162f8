package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling through while the breaker is
// open or a half-open probe is already in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures the circuit breaker behavior
type Settings struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before allowing a probe
	Cooldown time.Duration
	// IsFailure classifies call results; nil counts every non-nil error
	IsFailure func(err error) bool
	// OnStateChange is called with the breaker lock held
	OnStateChange func(name string, from, to State)
	// Clock overrides time.Now in tests
	Clock func() time.Time
}

// DefaultSettings opens after 5 consecutive failures for 30 seconds.
func DefaultSettings() Settings {
	return Settings{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	}
}

// Breaker stops calling a failing dependency for a cooldown period. After
// the cooldown one probe is let through: success closes the breaker,
// failure reopens it.
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	failures uint32
	openedAt time.Time
	probing  bool
}

// New creates a circuit breaker; zero settings take the defaults.
func New(name string, settings Settings) *Breaker {
	defaults := DefaultSettings()
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = defaults.FailureThreshold
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = defaults.Cooldown
	}
	if settings.IsFailure == nil {
		settings.IsFailure = func(err error) bool { return err != nil }
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}

	return &Breaker{name: name, settings: settings, state: StateClosed}
}

// Name returns the name of the circuit breaker
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state of the circuit breaker
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	return b.state
}

// Failures returns the current run of consecutive failures.
func (b *Breaker) Failures() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.failures
}

// Do runs call if the breaker admits it and records the outcome.
func (b *Breaker) Do(call func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := call()
	b.record(b.settings.IsFailure(err))
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.advance()
	switch b.state {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasProbe := b.state == StateHalfOpen
	b.probing = false

	if !failed {
		b.failures = 0
		if wasProbe {
			b.setState(StateClosed)
		}
		return
	}

	b.failures++
	if wasProbe || b.failures >= b.settings.FailureThreshold {
		b.openedAt = b.settings.Clock()
		b.setState(StateOpen)
	}
}

// advance moves an expired open breaker to half-open. Callers hold mu.
func (b *Breaker) advance() {
	if b.state == StateOpen && b.settings.Clock().Sub(b.openedAt) >= b.settings.Cooldown {
		b.setState(StateHalfOpen)
	}
}

func (b *Breaker) setState(state State) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	if state == StateClosed {
		b.failures = 0
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, prev, state)
	}
}
