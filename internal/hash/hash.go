// Package hash implements the domain-separated transcript hash used to derive
// Fiat-Shamir challenges.
//
// Only public material may ever be written to a transcript: commitments,
// public keys, and statement fields. Writing secret material would leak it
// through the challenge.
package hash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/credo-id/zkcred/internal/params"
	"github.com/credo-id/zkcred/pkg/math/curve"
)

const DigestLengthBytes = params.SecBytes * 2 // 64

// Hash is the hash function we use for deriving challenges and Merkle-style
// commitments.
//
// Internally, this is a wrapper around blake3, but any hash function with an
// easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash whose state is initialized with a protocol domain tag.
func New() *Hash {
	h := &Hash{h: blake3.New()}
	_, _ = h.h.Write([]byte("zkcred"))
	return h
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// Challenge derives a challenge scalar from the current transcript state.
//
// The state itself is not mutated, so further writes remain possible.
func (hash *Hash) Challenge() *curve.Scalar {
	return curve.FromHash(hash.Clone().Sum()[:params.SecBytes])
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - uint64
//   - hash.WriterToWithDomain (including curve.Point and curve.Scalar)
//
// This function applies its own domain separation for the first two types.
// The last type already suggests which domain to use, and this function
// respects it. The order of writes is significant: generation and
// verification must write the exact same sequence or the challenges differ.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case uint64:
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], t)
			err = writeWithDomain(hash.h, &BytesWithDomain{
				TheDomain: "uint64",
				Bytes:     buf[:],
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write uint64: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write io.WriterTo: %w", err)
			}
		default:
			panic("hash.Hash: unsupported type")
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
