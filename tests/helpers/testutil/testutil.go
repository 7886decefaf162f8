// Package testutil provides testing utilities and helpers for desktop tests.
package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/LimitlessOS/desktop/internal/infrastructure/storage"
)

// ErrMediumDown is the failure returned by unavailable mocks.
var ErrMediumDown = errors.New("testutil: storage medium unavailable")

// MockKV is a mock implementation of storage.KV for testing.
type MockKV struct {
	mock.Mock
}

// Get mocks the Get method.
func (m *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Put mocks the Put method.
func (m *MockKV) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// NewMockKV creates a mock whose slot is empty and whose writes succeed.
func NewMockKV(t *testing.T) *MockKV {
	t.Helper()
	m := new(MockKV)

	// Default behavior: nothing stored yet
	m.On("Get", mock.Anything, mock.Anything).
		Return(nil, storage.ErrNotFound).
		Maybe()

	// Default behavior: writes succeed
	m.On("Put", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Maybe()

	return m
}

// NewUnavailableKV creates a mock that fails every read and write.
func NewUnavailableKV(t *testing.T) *MockKV {
	t.Helper()
	m := new(MockKV)
	m.On("Get", mock.Anything, mock.Anything).Return(nil, ErrMediumDown).Maybe()
	m.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(ErrMediumDown).Maybe()
	return m
}

// FlakyKV wraps a real medium and fails writes while Fail is set.
type FlakyKV struct {
	storage.KV
	Fail   bool
	Writes int
}

// NewFlakyKV wraps an in-memory medium.
func NewFlakyKV() *FlakyKV {
	return &FlakyKV{KV: storage.NewMemoryKV()}
}

// Put fails with ErrMediumDown while Fail is set.
func (f *FlakyKV) Put(ctx context.Context, key string, value []byte) error {
	if f.Fail {
		return ErrMediumDown
	}
	f.Writes++
	return f.KV.Put(ctx, key, value)
}

// SeedSlot writes raw bytes into key of kv.
func SeedSlot(t *testing.T, kv storage.KV, key string, raw []byte) {
	t.Helper()
	require.NoError(t, kv.Put(context.Background(), key, raw))
}

// ReadSlot returns the raw bytes stored under key.
func ReadSlot(t *testing.T, kv storage.KV, key string) []byte {
	t.Helper()
	raw, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	return raw
}
