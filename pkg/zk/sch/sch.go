// Package zksch proves knowledge of the discrete log x of a public point
// X = x⋅g, optionally binding a message into the transcript.
package zksch

import (
	"io"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/math/sample"
)

type Public struct {
	// X = x⋅g
	X *curve.Point

	// Message is optional context bound into the challenge.
	Message []byte
}

type Private struct {
	// X is the secret exponent.
	X *curve.Scalar
}

type Proof struct {
	// A = a⋅g is the commitment to the nonce a.
	A *curve.Point
	// E = H(A, X, message)
	E *curve.Scalar
	// Z = a + e⋅x mod q
	Z *curve.Scalar
}

func challenge(h *hash.Hash, A, X *curve.Point, message []byte) *curve.Scalar {
	_ = h.WriteAny(A, X, message)
	return h.Challenge()
}

// NewProof computes a non-interactive proof of knowledge of private.X.
//
// A zero secret produces a proof that verifies but protects nothing; callers
// must reject zero secrets before proving.
func NewProof(rand io.Reader, h *hash.Hash, public Public, private Private) *Proof {
	a := sample.Scalar(rand)
	A := new(curve.Point).ScalarBaseMult(a)

	e := challenge(h, A, public.X, public.Message)

	// z = a + e⋅x mod q
	z := new(curve.Scalar).MultiplyAdd(e, private.X, a)

	return &Proof{A: A, E: e, Z: z}
}

// Verify checks that the stored challenge matches the transcript and that
// z⋅g == A + e⋅X. Any malformed input yields false, never an error.
func (p *Proof) Verify(h *hash.Hash, public Public) bool {
	if p == nil || p.A == nil || p.E == nil || p.Z == nil || public.X == nil {
		return false
	}
	if p.A.IsIdentity() || public.X.IsIdentity() {
		return false
	}

	e := challenge(h, p.A, public.X, public.Message)
	if !e.Equal(p.E) {
		return false
	}

	var lhs, rhs curve.Point
	lhs.ScalarBaseMult(p.Z)
	rhs.ScalarMult(e, public.X)
	rhs.Add(&rhs, p.A)

	return lhs.Equal(&rhs)
}
