// Package merkle builds binary hash trees over ordered value sets and
// produces compact membership proofs.
package merkle

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/credo-id/zkcred/internal/params"
)

type Error string

const (
	ErrEmptySet        Error = "empty value set"
	ErrIndexOutOfRange Error = "leaf index out of range"
)

func (e Error) Error() string {
	return fmt.Sprintf("merkle: %s", string(e))
}

// Digest is a single SHA3-256 tree node.
type Digest []byte

// HashLeaf maps a set value to its leaf digest.
func HashLeaf(value []byte) Digest {
	out := sha3.Sum256(value)
	return out[:]
}

func hashNode(left, right Digest) Digest {
	h := sha3.New256()
	_, _ = h.Write(left)
	_, _ = h.Write(right)
	return h.Sum(nil)
}

// Tree is a binary hash tree, leaves at level 0 and the root alone at the
// last level. A node at position i of a level is the hash of its children at
// positions 2i and 2i+1 of the level below; when a level has an odd count,
// the last node is duplicated as its own sibling.
type Tree struct {
	levels [][]Digest
}

// New builds the full tree over hash(v) for each v in the ordered set.
func New(values [][]byte) (*Tree, error) {
	if len(values) == 0 {
		return nil, ErrEmptySet
	}

	leaves := make([]Digest, len(values))
	for i, v := range values {
		leaves[i] = HashLeaf(v)
	}

	levels := [][]Digest{leaves}
	for current := leaves; len(current) > 1; {
		if len(current)%2 != 0 {
			current = append(current, current[len(current)-1])
		}
		next := make([]Digest, len(current)/2)
		for i := range next {
			next[i] = hashNode(current[2*i], current[2*i+1])
		}
		levels = append(levels, next)
		current = next
	}
	return &Tree{levels: levels}, nil
}

// Root returns the single digest at the top of the tree.
func (t *Tree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// LeafCount returns the number of leaves the tree was built from.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// Proof is a membership path from one leaf up to the root.
//
// Index[i] marks the side of the current node at level i: 0 when it is the
// left child (the sibling goes on the right), 1 when it is the right child.
type Proof struct {
	Leaf  Digest   `json:"leaf"`
	Path  []Digest `json:"path"`
	Index []uint8  `json:"index"`
	Root  Digest   `json:"root"`
}

// Proof extracts the sibling path for the leaf at the given position.
func (t *Tree) Proof(index int) (*Proof, error) {
	if index < 0 || index >= len(t.levels[0]) {
		return nil, ErrIndexOutOfRange
	}

	proof := &Proof{
		Leaf: t.levels[0][index],
		Root: t.Root(),
	}
	pos := index
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := pos ^ 1
		if sibling >= len(level) {
			// odd level: the node is its own sibling
			sibling = pos
		}
		proof.Path = append(proof.Path, level[sibling])
		proof.Index = append(proof.Index, uint8(pos&1))
		pos /= 2
	}
	return proof, nil
}

// Verify recomputes the path from the leaf and reports whether it reproduces
// the root. It never fails loudly: a malformed path simply does not reproduce
// the root.
func (p *Proof) Verify() bool {
	if p == nil || len(p.Path) != len(p.Index) {
		return false
	}
	if len(p.Leaf) != params.BytesDigest || len(p.Root) != params.BytesDigest {
		return false
	}

	current := p.Leaf
	for i, sibling := range p.Path {
		if len(sibling) != params.BytesDigest {
			return false
		}
		switch p.Index[i] {
		case 0:
			current = hashNode(current, sibling)
		case 1:
			current = hashNode(sibling, current)
		default:
			return false
		}
	}
	return bytes.Equal(current, p.Root)
}
