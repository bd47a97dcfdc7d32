package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(n int) [][]byte {
	values := make([][]byte, n)
	for i := range values {
		values[i] = []byte(fmt.Sprintf("credential-%d", i))
	}
	return values
}

func TestProofVerifies(t *testing.T) {
	values := testSet(8)
	tree, err := New(values)
	require.NoError(t, err)

	for i := range values {
		p, err := tree.Proof(i)
		require.NoError(t, err)
		assert.True(t, p.Verify(), "proof for leaf %d", i)
		assert.Equal(t, []byte(tree.Root()), []byte(p.Root))
		assert.Equal(t, []byte(HashLeaf(values[i])), []byte(p.Leaf))
	}
}

func TestOddLeafCounts(t *testing.T) {
	// exercises the duplicate-last-node rule at several levels
	for _, n := range []int{1, 2, 3, 5, 6, 7, 9, 13} {
		tree, err := New(testSet(n))
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			p, err := tree.Proof(i)
			require.NoError(t, err)
			assert.True(t, p.Verify(), "n=%d leaf=%d", n, i)
		}
	}
}

func TestFlippedSiblingFails(t *testing.T) {
	tree, err := New(testSet(8))
	require.NoError(t, err)

	p, err := tree.Proof(3)
	require.NoError(t, err)

	for level := range p.Path {
		tampered := *p
		tampered.Path = append([]Digest(nil), p.Path...)
		corrupted := append(Digest(nil), tampered.Path[level]...)
		corrupted[0] ^= 0x01
		tampered.Path[level] = corrupted
		assert.False(t, tampered.Verify(), "flipped sibling at level %d", level)
	}
}

func TestWrongSideFails(t *testing.T) {
	tree, err := New(testSet(8))
	require.NoError(t, err)

	p, err := tree.Proof(3)
	require.NoError(t, err)

	p.Index[0] ^= 1
	assert.False(t, p.Verify())
}

func TestIndexOutOfRange(t *testing.T) {
	tree, err := New(testSet(4))
	require.NoError(t, err)

	_, err = tree.Proof(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.Proof(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEmptySet(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestMalformedProofIsFalseNotFatal(t *testing.T) {
	tree, err := New(testSet(8))
	require.NoError(t, err)
	p, err := tree.Proof(0)
	require.NoError(t, err)

	truncated := *p
	truncated.Path = p.Path[:len(p.Path)-1]
	truncated.Index = p.Index[:len(p.Index)-1]
	assert.False(t, truncated.Verify())

	unbalanced := *p
	unbalanced.Index = p.Index[:len(p.Index)-1]
	assert.False(t, unbalanced.Verify())

	badSide := *p
	badSide.Index = append([]uint8(nil), p.Index...)
	badSide.Index[0] = 7
	assert.False(t, badSide.Verify())

	assert.False(t, (*Proof)(nil).Verify())

	shortLeaf := *p
	shortLeaf.Leaf = p.Leaf[:16]
	assert.False(t, shortLeaf.Verify())
}

func TestSingleLeafTree(t *testing.T) {
	tree, err := New(testSet(1))
	require.NoError(t, err)

	p, err := tree.Proof(0)
	require.NoError(t, err)
	assert.True(t, p.Verify())
	assert.Empty(t, p.Path)
	assert.Equal(t, []byte(p.Leaf), []byte(p.Root))
}
