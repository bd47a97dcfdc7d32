package curve

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/credo-id/zkcred/internal/params"
)

// Scalar is an integer mod q. All operations reduce mod q.
type Scalar struct {
	s secp256k1.ModNScalar
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarUInt32 returns a new Scalar set to a small constant.
func NewScalarUInt32(i uint32) *Scalar {
	var s Scalar
	s.s.SetInt(i)
	return &s
}

// Add sets s = x + y mod q, and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	s.s.Add2(&x.s, &y.s)
	return s
}

// Subtract sets s = x - y mod q, and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	var yNeg secp256k1.ModNScalar
	yNeg.NegateVal(&y.s)
	s.s.Add2(&x.s, &yNeg)
	return s
}

// Multiply sets s = x * y mod q, and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	s.s.Mul2(&x.s, &y.s)
	return s
}

// MultiplyAdd sets s = x * y + z mod q, and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	var r secp256k1.ModNScalar
	r.Mul2(&x.s, &y.s)
	s.s.Add2(&r, &z.s)
	return s
}

// Negate sets s = -x mod q, and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	s.s.NegateVal(&x.s)
	return s
}

// Invert sets s = x⁻¹ mod q, and returns s. x must be nonzero.
func (s *Scalar) Invert(x *Scalar) *Scalar {
	s.s.InverseValNonConst(&x.s)
	return s
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	s.s.Set(&x.s)
	return s
}

// SetNat sets s = n mod q, and returns s.
func (s *Scalar) SetNat(n *saferith.Nat) *Scalar {
	reduced := new(saferith.Nat).Mod(n, order)
	buf := make([]byte, params.BytesScalar)
	s.s.SetByteSlice(reduced.FillBytes(buf))
	return s
}

// Equal returns true if s and t are equal.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.s.Equals(&t.s)
}

// IsZero returns true if s is 0 mod q.
func (s *Scalar) IsZero() bool {
	return s.s.IsZero()
}

// Bytes returns the canonical 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	buf := make([]byte, params.BytesScalar)
	s.s.PutBytesUnchecked(buf)
	return buf
}

// WriteTo implements io.WriterTo and is used within the hash.Hash function.
func (s *Scalar) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Scalar) Domain() string {
	return "Scalar"
}
