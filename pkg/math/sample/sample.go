// Package sample draws uniform group elements from a secure random source.
package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"

	"github.com/credo-id/zkcred/internal/params"
	"github.com/credo-id/zkcred/pkg/math/curve"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Scalar returns a uniform scalar in [1, q).
//
// Raw bytes are rejected and resampled whenever they encode a value ≥ q or 0,
// so the result carries no modulo bias.
func Scalar(rand io.Reader) *curve.Scalar {
	order := curve.Order()
	n := new(saferith.Nat)
	buf := make([]byte, params.BytesScalar)
	for i := 0; i < maxIterations; i++ {
		mustReadBits(rand, buf)
		n.SetBytes(buf)
		if _, _, lt := n.CmpMod(order); lt != 1 {
			continue
		}
		if n.EqZero() == 1 {
			continue
		}
		return curve.NewScalar().SetNat(n)
	}
	panic(ErrMaxIterations)
}

// ScalarPointPair returns a uniform nonzero scalar x along with X = x⋅g.
func ScalarPointPair(rand io.Reader) (*curve.Scalar, *curve.Point) {
	var p curve.Point
	s := Scalar(rand)
	p.ScalarBaseMult(s)
	return s, &p
}

// Point returns a uniform curve point with unknown discrete log relative to
// any fixed generator, suitable as the second generator h of a Pedersen
// commitment.
//
// A random x coordinate is drawn and rejected until it decompresses to a
// point on the curve, so no party learns a scalar k with h = k⋅g.
func Point(rand io.Reader) *curve.Point {
	buf := make([]byte, params.BytesPoint)
	var p curve.Point
	for i := 0; i < maxIterations; i++ {
		mustReadBits(rand, buf)
		// force a valid compressed format byte, keep one bit for oddness
		buf[0] = 2 + (buf[0] & 1)
		if err := p.UnmarshalBinary(buf); err == nil {
			return &p
		}
	}
	panic(ErrMaxIterations)
}
