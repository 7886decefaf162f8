// Package id generates identifiers for desktop objects.
//
// IDs are prefixed ULIDs ("win_01J..."): lexicographically sortable by
// creation time and never reused within a process, so a stale callback
// holding a closed window's id can never address a newer window.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// WindowID identifies an open application window.
type WindowID string

// WindowPrefix marks window ids.
const WindowPrefix = "win"

func (id WindowID) String() string { return string(id) }

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy, so
// ids minted in the same millisecond still sort in allocation order.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewWindowID generates a window id from the given generator.
func (g *Generator) NewWindowID() WindowID {
	return WindowID(g.GenerateWithPrefix(WindowPrefix))
}

// NewWindowID generates a window id from the default generator.
func NewWindowID() WindowID {
	return Default().NewWindowID()
}

// IsValid reports whether id is a prefixed ULID.
func IsValid(id string) bool {
	prefix, raw, ok := strings.Cut(id, "_")
	if !ok || prefix == "" {
		return false
	}
	_, err := ulid.Parse(raw)
	return err == nil
}

// Timestamp extracts the creation time from a prefixed id.
func Timestamp(id string) (time.Time, error) {
	_, raw, ok := strings.Cut(id, "_")
	if !ok {
		return time.Time{}, fmt.Errorf("id %q has no prefix", id)
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
