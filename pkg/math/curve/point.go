package curve

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Point is an element of the secp256k1 group, including the point at infinity.
type Point struct {
	p secp256k1.JacobianPoint
}

// NewBasePoint returns a point initialized to the generator g.
func NewBasePoint() *Point {
	var v Point
	v.p.X.Set(&baseX)
	v.p.Y.Set(&baseY)
	v.p.Z.SetInt(1)
	return &v
}

// NewIdentityPoint returns a point set to ∞.
func NewIdentityPoint() *Point {
	var v Point
	return &v
}

// Set sets v = u, and returns v.
func (v *Point) Set(u *Point) *Point {
	v.p.Set(&u.p)
	return v
}

// Add sets v = p + q, and returns v.
func (v *Point) Add(p, q *Point) *Point {
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.p, &q.p, &r)
	v.p.Set(&r)
	return v
}

// Subtract sets v = p - q, and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	var qNeg Point
	qNeg.Negate(q)
	return v.Add(p, &qNeg)
}

// Negate sets v = -p, and returns v.
func (v *Point) Negate(p *Point) *Point {
	v.Set(p)
	v.p.Y.Negate(1)
	v.p.Y.Normalize()
	return v
}

// ScalarBaseMult sets v = x * g, where g is the canonical generator, and
// returns v.
func (v *Point) ScalarBaseMult(x *Scalar) *Point {
	secp256k1.ScalarBaseMultNonConst(&x.s, &v.p)
	return v
}

// ScalarMult sets v = x * q, and returns v.
func (v *Point) ScalarMult(x *Scalar, q *Point) *Point {
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&x.s, &q.p, &r)
	v.p.Set(&r)
	return v
}

// Equal returns true if v is equivalent to u.
func (v *Point) Equal(u *Point) bool {
	if v == nil || u == nil {
		return false
	}
	v.toAffine()
	u.toAffine()
	return v.p.X.Equals(&u.p.X) && v.p.Y.Equals(&u.p.Y) && v.p.Z.Equals(&u.p.Z)
}

// IsIdentity returns true if the point is ∞.
func (v *Point) IsIdentity() bool {
	return (v.p.X.IsZero() && v.p.Y.IsZero()) || v.p.Z.IsZero()
}

// WriteTo implements io.WriterTo and is used within the hash.Hash function.
// It writes the compressed encoding of v to w.
func (v *Point) WriteTo(w io.Writer) (int64, error) {
	data, err := v.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Point) Domain() string {
	return "Point"
}

func (v *Point) toAffine() *Point {
	if !v.p.Z.IsOne() {
		v.p.ToAffine()
	}
	return v
}
