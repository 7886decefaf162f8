package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashAlgorithm represents the hashing algorithm to use
type HashAlgorithm string

const (
	SHA256  HashAlgorithm = "sha256"
	BLAKE2b HashAlgorithm = "blake2b"
)

// Hasher produces algorithm-tagged digests ("blake2b:<hex>") so a stored
// digest records how it was computed.
type Hasher struct {
	algorithm HashAlgorithm
}

// NewHasher creates a hasher for a known algorithm.
func NewHasher(algorithm HashAlgorithm) (*Hasher, error) {
	switch algorithm {
	case SHA256, BLAKE2b:
		return &Hasher{algorithm: algorithm}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", algorithm)
	}
}

// DefaultHasher returns a BLAKE2b-256 hasher.
func DefaultHasher() *Hasher {
	return &Hasher{algorithm: BLAKE2b}
}

// Algorithm returns the configured algorithm.
func (h *Hasher) Algorithm() HashAlgorithm {
	return h.algorithm
}

// Hash computes the tagged digest of data.
func (h *Hasher) Hash(data []byte) string {
	return string(h.algorithm) + ":" + hex.EncodeToString(digest(h.algorithm, data))
}

// Verify checks a tagged digest against data using the algorithm named in
// the tag, which may differ from the hasher's own.
func (h *Hasher) Verify(tagged string, data []byte) bool {
	algo, sum, ok := strings.Cut(tagged, ":")
	if !ok {
		return false
	}
	switch HashAlgorithm(algo) {
	case SHA256, BLAKE2b:
	default:
		return false
	}
	return sum == hex.EncodeToString(digest(HashAlgorithm(algo), data))
}

func digest(algorithm HashAlgorithm, data []byte) []byte {
	switch algorithm {
	case SHA256:
		sum := sha256.Sum256(data)
		return sum[:]
	default:
		sum := blake2b.Sum256(data)
		return sum[:]
	}
}
