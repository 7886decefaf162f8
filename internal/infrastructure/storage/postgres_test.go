package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Runs against a real database when POSTGRES_TEST_URL is set.
func TestPostgresKV(t *testing.T) {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	kv, err := NewPostgresKV(ctx, url)
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE key = $1`, "limitlessos_vfs")
	require.NoError(t, err)

	exerciseKV(t, kv)
}
