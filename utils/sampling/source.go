// Package sampling implements deterministic and cryptographically secure
// sources of random bytes and integers.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// Source is a deterministic stream of pseudo-random bytes expanded from a
// 32-byte seed with the blake3 XOF. Two sources instantiated with the same
// seed produce the same stream. A Source is not safe for concurrent use;
// derive an independent child with [Source.NewSeed] per goroutine instead.
type Source struct {
	seed [32]byte
	xof  *blake3.Digest
}

// NewSeed returns a fresh 32-byte seed read from crypto/rand.
func NewSeed() (seed [32]byte) {
	if _, err := rand.Read(seed[:]); err != nil {
		// Sanity check
		panic(fmt.Errorf("crypto/rand: %w", err))
	}
	return
}

// NewSource instantiates a new [Source] from the provided seed.
func NewSource(seed [32]byte) (s *Source) {
	h := blake3.New()
	if _, err := h.Write(seed[:]); err != nil {
		// Sanity check
		panic(fmt.Errorf("blake3: %w", err))
	}
	return &Source{seed: seed, xof: h.Digest()}
}

// Seed returns the seed the receiver was instantiated with.
func (s *Source) Seed() (seed [32]byte) {
	return s.seed
}

// NewSeed derives a child seed from the receiver's stream.
func (s *Source) NewSeed() (seed [32]byte) {
	s.mustRead(seed[:])
	return
}

// Uint64 returns the next 8 bytes of the stream as an uint64.
func (s *Source) Uint64() uint64 {
	var b [8]byte
	s.mustRead(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Read fills p with the next len(p) bytes of the stream.
// It implements io.Reader and never returns an error.
func (s *Source) Read(p []byte) (n int, err error) {
	s.mustRead(p)
	return len(p), nil
}

func (s *Source) mustRead(p []byte) {
	if _, err := s.xof.Read(p); err != nil {
		// Sanity check
		panic(fmt.Errorf("blake3: %w", err))
	}
}
