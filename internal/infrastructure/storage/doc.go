// Package storage provides the durable key-value media behind the file store.
//
// A slot is one named value holding a whole serialized snapshot. Backends:
//   - MemoryKV: process memory (default, tests)
//   - FileKV: one file per slot, temp-file + rename, optional zstd
//   - S3KV: one object per slot (S3, MinIO)
//   - PostgresKV: one row per slot in kv_slots
//
// Get returns ErrNotFound for a slot that was never written; any other
// error means the medium itself is unavailable.
package storage
