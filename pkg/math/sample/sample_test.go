package sample

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credo-id/zkcred/pkg/math/curve"
)

func TestScalarIsNonzero(t *testing.T) {
	for i := 0; i < 64; i++ {
		s := Scalar(rand.Reader)
		require.False(t, s.IsZero())
	}
}

func TestScalarsDiffer(t *testing.T) {
	a := Scalar(rand.Reader)
	b := Scalar(rand.Reader)
	assert.False(t, a.Equal(b), "two 256-bit samples should never collide")
}

func TestScalarPointPair(t *testing.T) {
	x, X := ScalarPointPair(rand.Reader)
	expected := new(curve.Point).ScalarBaseMult(x)
	assert.True(t, X.Equal(expected))
}

func TestPointIsOnCurve(t *testing.T) {
	p := Point(rand.Reader)
	require.False(t, p.IsIdentity())

	// round-trips through the compressed encoding, so it lies on the curve
	data, err := p.MarshalBinary()
	require.NoError(t, err)
	q := new(curve.Point)
	require.NoError(t, q.UnmarshalBinary(data))
	assert.True(t, p.Equal(q))
}

func TestPointsDiffer(t *testing.T) {
	a := Point(rand.Reader)
	b := Point(rand.Reader)
	assert.False(t, a.Equal(b))
}
