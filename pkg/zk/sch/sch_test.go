package zksch

import (
	"crypto/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/math/sample"
)

func TestSchPass(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	public := Public{X: X, Message: []byte("sign-in")}

	proof := NewProof(rand.Reader, hash.New(), public, Private{X: x})
	assert.True(t, proof.Verify(hash.New(), public), "valid proof should verify")
}

func TestSchMessageBinding(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)

	proof := NewProof(rand.Reader, hash.New(), Public{X: X, Message: []byte("alpha")}, Private{X: x})
	assert.False(t, proof.Verify(hash.New(), Public{X: X, Message: []byte("beta")}),
		"proof must not transfer to a different message")
}

func TestSchTamperedResponseFails(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	public := Public{X: X}

	proof := NewProof(rand.Reader, hash.New(), public, Private{X: x})
	proof.Z = new(curve.Scalar).Add(proof.Z, curve.NewScalarUInt32(1))
	assert.False(t, proof.Verify(hash.New(), public))
}

func TestSchTamperedChallengeFails(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	public := Public{X: X}

	proof := NewProof(rand.Reader, hash.New(), public, Private{X: x})
	proof.E = new(curve.Scalar).Add(proof.E, curve.NewScalarUInt32(1))
	assert.False(t, proof.Verify(hash.New(), public))
}

func TestSchWrongPublicKeyFails(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	_, Y := sample.ScalarPointPair(rand.Reader)

	proof := NewProof(rand.Reader, hash.New(), Public{X: X}, Private{X: x})
	assert.False(t, proof.Verify(hash.New(), Public{X: Y}))
}

func TestSchRejectsIdentity(t *testing.T) {
	proof := NewProof(rand.Reader, hash.New(), Public{X: curve.NewIdentityPoint()}, Private{X: curve.NewScalar()})
	assert.False(t, proof.Verify(hash.New(), Public{X: curve.NewIdentityPoint()}),
		"proof should not accept identity point")
}

func TestSchMarshalRoundTrip(t *testing.T) {
	x, X := sample.ScalarPointPair(rand.Reader)
	public := Public{X: X, Message: []byte("round-trip")}

	proof := NewProof(rand.Reader, hash.New(), public, Private{X: x})

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := &Proof{}
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")

	assert.True(t, proof2.Verify(hash.New(), public))
}
