package zkrange

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/pkg/math/curve"
)

func TestRangePass(t *testing.T) {
	public := Public{Min: 18, Max: 150}
	proof, err := NewProof(rand.Reader, hash.New(), public, Private{Value: 50})
	require.NoError(t, err)
	assert.True(t, proof.Verify(public))
}

func TestRangeBoundsInclusive(t *testing.T) {
	public := Public{Min: 18, Max: 150}
	for _, v := range []int64{18, 150} {
		proof, err := NewProof(rand.Reader, hash.New(), public, Private{Value: v})
		require.NoError(t, err)
		assert.True(t, proof.Verify(public), "value %d", v)
	}
}

func TestRangeOutOfRange(t *testing.T) {
	public := Public{Min: 18, Max: 150}

	_, err := NewProof(rand.Reader, hash.New(), public, Private{Value: 10})
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewProof(rand.Reader, hash.New(), public, Private{Value: 151})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRangeInvalidBounds(t *testing.T) {
	_, err := NewProof(rand.Reader, hash.New(), Public{Min: 10, Max: 5}, Private{Value: 7})
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestBitLength(t *testing.T) {
	assert.Equal(t, 1, BitLength(5, 5))
	assert.Equal(t, 1, BitLength(0, 1))
	assert.Equal(t, 2, BitLength(0, 3))
	assert.Equal(t, 3, BitLength(0, 4))
	assert.Equal(t, 8, BitLength(18, 150))
}

func TestProofShape(t *testing.T) {
	public := Public{Min: 18, Max: 150}
	proof, err := NewProof(rand.Reader, hash.New(), public, Private{Value: 44})
	require.NoError(t, err)

	bitLen := BitLength(public.Min, public.Max)
	assert.Len(t, proof.Commitments, bitLen)
	assert.Len(t, proof.Challenges, bitLen)
	assert.Len(t, proof.Responses, bitLen)
}

func TestVerifyRejectsMalformedShapes(t *testing.T) {
	public := Public{Min: 18, Max: 150}
	proof, err := NewProof(rand.Reader, hash.New(), public, Private{Value: 44})
	require.NoError(t, err)

	// narrower decomposition than the interval needs
	truncated := *proof
	truncated.Commitments = proof.Commitments[:4]
	truncated.Challenges = proof.Challenges[:4]
	truncated.Responses = proof.Responses[:4]
	assert.False(t, truncated.Verify(public))

	// sequences out of parallel
	unbalanced := *proof
	unbalanced.Responses = proof.Responses[:len(proof.Responses)-1]
	assert.False(t, unbalanced.Verify(public))

	// missing slot
	holed := *proof
	holed.Challenges = append([]*curve.Scalar(nil), proof.Challenges...)
	holed.Challenges[2] = nil
	assert.False(t, holed.Verify(public))

	// no second generator
	headless := *proof
	headless.H = nil
	assert.False(t, headless.Verify(public))

	assert.False(t, (*Proof)(nil).Verify(public))
}

func TestVerifyChecksStatementBounds(t *testing.T) {
	public := Public{Min: 18, Max: 150}
	proof, err := NewProof(rand.Reader, hash.New(), public, Private{Value: 44})
	require.NoError(t, err)

	// the payload bounds must match the statement
	assert.False(t, proof.Verify(Public{Min: 21, Max: 150}))
	assert.False(t, proof.Verify(Public{Min: 18, Max: 200}))
}
