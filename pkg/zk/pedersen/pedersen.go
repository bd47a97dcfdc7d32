// Package zkpedersen implements Pedersen commitments over the curve group,
// C = v⋅g + r⋅h, together with a proof of knowledge of an opening (v, r).
package zkpedersen

import (
	"fmt"
	"io"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/math/sample"
)

type Error string

const (
	ErrNilGenerator      Error = "second generator is nil"
	ErrIdentityGenerator Error = "second generator is the identity"
)

func (e Error) Error() string {
	return fmt.Sprintf("pedersen: %s", string(e))
}

// Parameters hold the second generator h of the commitment scheme.
//
// h must be chosen with unknown discrete log relative to g (see sample.Point);
// a caller who knows k with h = k⋅g can open a commitment to any value. The
// proof cannot check this, it is a precondition on the caller.
type Parameters struct {
	H *curve.Point
}

// NewParameters samples fresh commitment parameters.
func NewParameters(rand io.Reader) Parameters {
	return Parameters{H: sample.Point(rand)}
}

// Validate checks the structural requirements on the parameters.
func (p Parameters) Validate() error {
	if p.H == nil {
		return ErrNilGenerator
	}
	if p.H.IsIdentity() {
		return ErrIdentityGenerator
	}
	return nil
}

// Commit computes v⋅g + r⋅h.
func (p Parameters) Commit(value, blinding *curve.Scalar) *curve.Point {
	var vg, rh curve.Point
	vg.ScalarBaseMult(value)
	rh.ScalarMult(blinding, p.H)
	return vg.Add(&vg, &rh)
}

type Public struct {
	// C = v⋅g + r⋅h is the value commitment being opened.
	C *curve.Point

	Params Parameters
}

type Private struct {
	Value    *curve.Scalar
	Blinding *curve.Scalar
}

type Proof struct {
	// A = a⋅g + b⋅h is the commitment to the two nonces.
	A *curve.Point
	// E = H(C, A)
	E *curve.Scalar
	// Zv = a + e⋅v mod q
	Zv *curve.Scalar
	// Zr = b + e⋅r mod q
	Zr *curve.Scalar
}

func challenge(h *hash.Hash, C, A *curve.Point) *curve.Scalar {
	_ = h.WriteAny(C, A)
	return h.Challenge()
}

// NewProof proves knowledge of an opening (value, blinding) of public.C.
func NewProof(rand io.Reader, h *hash.Hash, public Public, private Private) *Proof {
	a := sample.Scalar(rand)
	b := sample.Scalar(rand)
	A := public.Params.Commit(a, b)

	e := challenge(h, public.C, A)

	zv := new(curve.Scalar).MultiplyAdd(e, private.Value, a)
	zr := new(curve.Scalar).MultiplyAdd(e, private.Blinding, b)

	return &Proof{A: A, E: e, Zv: zv, Zr: zr}
}

// Verify checks that the stored challenge matches the transcript and that
// zv⋅g + zr⋅h == A + e⋅C. Any malformed input yields false, never an error.
func (p *Proof) Verify(h *hash.Hash, public Public) bool {
	if p == nil || p.A == nil || p.E == nil || p.Zv == nil || p.Zr == nil {
		return false
	}
	if public.C == nil || public.Params.Validate() != nil {
		return false
	}
	if p.A.IsIdentity() || public.C.IsIdentity() {
		return false
	}

	e := challenge(h, public.C, p.A)
	if !e.Equal(p.E) {
		return false
	}

	lhs := public.Params.Commit(p.Zv, p.Zr)

	var rhs curve.Point
	rhs.ScalarMult(e, public.C)
	rhs.Add(&rhs, p.A)

	return lhs.Equal(&rhs)
}
