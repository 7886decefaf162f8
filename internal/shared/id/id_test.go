package id

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestNewWindowIDPrefix(t *testing.T) {
	winID := NewWindowID()

	if !strings.HasPrefix(winID.String(), "win_") {
		t.Errorf("WindowID should start with 'win_', got: %s", winID)
	}
	if !IsValid(winID.String()) {
		t.Errorf("WindowID should be valid: %s", winID)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{NewWindowID().String(), true},
		{"win_not-a-ulid", false},
		{"01ARZ3NDEKTSV4RRFFQ69G5FAV", false},
		{"_01ARZ3NDEKTSV4RRFFQ69G5FAV", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValid(tt.id); got != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	winID := NewWindowID()

	ts, err := Timestamp(winID.String())
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}
	if ts.Before(before) || ts.After(time.Now().Add(time.Second)) {
		t.Errorf("Timestamp %v outside expected window", ts)
	}

	if _, err := Timestamp("nounderscore"); err == nil {
		t.Error("Expected error for id without prefix")
	}
}

func TestMonotonicOrdering(t *testing.T) {
	gen := NewGenerator()

	ids := make([]string, 200)
	for i := range ids {
		ids[i] = gen.NewWindowID().String()
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("IDs from one generator should sort in allocation order")
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()
	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[WindowID]bool)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				winID := gen.NewWindowID()
				mu.Lock()
				seen[winID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d unique IDs, got %d", workers*perWorker, len(seen))
	}
}
