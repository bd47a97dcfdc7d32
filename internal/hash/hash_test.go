package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeIsDeterministic(t *testing.T) {
	a := New()
	require.NoError(t, a.WriteAny([]byte("statement"), uint64(3)))

	b := New()
	require.NoError(t, b.WriteAny([]byte("statement"), uint64(3)))

	assert.True(t, a.Challenge().Equal(b.Challenge()))
}

func TestChallengeDependsOnOrder(t *testing.T) {
	a := New()
	require.NoError(t, a.WriteAny([]byte("first"), []byte("second")))

	b := New()
	require.NoError(t, b.WriteAny([]byte("second"), []byte("first")))

	assert.False(t, a.Challenge().Equal(b.Challenge()))
}

func TestChallengeDependsOnBoundaries(t *testing.T) {
	// "ab" ∥ "c" and "a" ∥ "bc" must hash differently
	a := New()
	require.NoError(t, a.WriteAny([]byte("ab"), []byte("c")))

	b := New()
	require.NoError(t, b.WriteAny([]byte("a"), []byte("bc")))

	assert.False(t, a.Challenge().Equal(b.Challenge()))
}

func TestCloneIsIndependent(t *testing.T) {
	a := New()
	require.NoError(t, a.WriteAny([]byte("shared")))

	b := a.Clone()
	require.NoError(t, b.WriteAny([]byte("extra")))

	assert.False(t, a.Challenge().Equal(b.Challenge()))

	// the original state is untouched by the clone's writes
	c := New()
	require.NoError(t, c.WriteAny([]byte("shared")))
	assert.True(t, a.Challenge().Equal(c.Challenge()))
}

func TestChallengeDoesNotConsumeState(t *testing.T) {
	a := New()
	require.NoError(t, a.WriteAny([]byte("statement")))

	first := a.Challenge()
	second := a.Challenge()
	assert.True(t, first.Equal(second))
}
