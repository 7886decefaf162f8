package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/klauspost/compress/zstd"
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// FileKV stores each slot as one file in a directory.
type FileKV struct {
	dir      string
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewFileKV creates the directory if needed. With compress set, slots are
// written zstd-compressed under a ".zst" suffix.
func NewFileKV(dir string, compress bool) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	kv := &FileKV{dir: dir, compress: compress}
	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			enc.Close()
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		kv.encoder = enc
		kv.decoder = dec
	}
	return kv, nil
}

// Get reads the slot file.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}

	if f.compress {
		plain, err := f.decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress slot %s: %w", key, err)
		}
		return plain, nil
	}
	return data, nil
}

// Put writes the slot through a temp file and rename.
func (f *FileKV) Put(_ context.Context, key string, value []byte) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}

	if f.compress {
		value = f.encoder.EncodeAll(value, nil)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for slot %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit slot %s: %w", key, err)
	}
	return nil
}

// Close releases the zstd coders.
func (f *FileKV) Close() error {
	if f.encoder != nil {
		f.encoder.Close()
	}
	if f.decoder != nil {
		f.decoder.Close()
	}
	return nil
}

func (f *FileKV) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	name := key + ".json"
	if f.compress {
		name += ".zst"
	}
	return filepath.Join(f.dir, name), nil
}
