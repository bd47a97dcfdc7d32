// Package zkcred is the caller-facing surface of the proof system: a
// stateless Suite value that generates proof envelopes from a witness and a
// public statement, and verifies previously received envelopes against the
// same statement.
//
// A Suite holds no mutable state beyond its random source, so any number of
// goroutines may share one instance without coordination. Generation fails
// loudly on violated preconditions; verification is fail-closed and only
// ever returns a boolean.
package zkcred

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"

	"github.com/credo-id/zkcred/internal/hash"
	"github.com/credo-id/zkcred/internal/pool"
	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/merkle"
	"github.com/credo-id/zkcred/pkg/proof"
	zkpedersen "github.com/credo-id/zkcred/pkg/zk/pedersen"
	zkrange "github.com/credo-id/zkcred/pkg/zk/rangeproof"
	zksch "github.com/credo-id/zkcred/pkg/zk/sch"
)

// Names of the public inputs carried by the proof envelopes.
const (
	InputPublicKey       = "publicKey"
	InputMessage         = "message"
	InputRoot            = "root"
	InputMin             = "min"
	InputMax             = "max"
	InputCommitment      = "commitment"
	InputSecondGenerator = "h"
)

type Error string

const (
	ErrZeroSecret           Error = "secret must be nonzero"
	ErrNilArgument          Error = "nil argument"
	ErrValueNotFound        Error = "value not present in candidate set"
	ErrAgeRequirementNotMet Error = "age below required minimum"
)

func (e Error) Error() string {
	return fmt.Sprintf("zkcred: %s", string(e))
}

// Suite generates and verifies proof envelopes. The zero value is not
// usable; construct one with NewSuite or NewSuiteWithRandomSource.
type Suite struct {
	rand io.Reader
}

// NewSuite returns a Suite drawing from crypto/rand.
func NewSuite() *Suite {
	return &Suite{rand: pool.NewLockedReader(rand.Reader)}
}

// NewSuiteWithRandomSource returns a Suite drawing from the given source,
// which must be cryptographically secure and safe for concurrent reads.
func NewSuiteWithRandomSource(r io.Reader) *Suite {
	return &Suite{rand: r}
}

// ProveKnowledge proves knowledge of the discrete log of g^secret, binding
// the optional message into the transcript. The public key is derived from
// the secret and placed in the envelope's public inputs.
func (s *Suite) ProveKnowledge(secret *curve.Scalar, message []byte) (*proof.Proof, error) {
	if secret == nil {
		return nil, ErrNilArgument
	}
	if secret.IsZero() {
		return nil, ErrZeroSecret
	}

	X := new(curve.Point).ScalarBaseMult(secret)
	p := zksch.NewProof(s.rand, hash.New(), zksch.Public{X: X, Message: message}, zksch.Private{X: secret})

	xHex, err := X.MarshalHex()
	if err != nil {
		return nil, err
	}
	aHex, err := p.A.MarshalHex()
	if err != nil {
		return nil, err
	}
	return proof.New(
		proof.Schnorr{
			Commitment: aHex,
			Challenge:  p.E.MarshalHex(),
			Response:   p.Z.MarshalHex(),
		},
		map[string]string{
			InputPublicKey: xHex,
			InputMessage:   string(message),
		},
	)
}

// VerifyKnowledge checks a knowledge-of-exponent envelope against the public
// key and message stored in its public inputs.
func (s *Suite) VerifyKnowledge(p *proof.Proof) bool {
	if p == nil {
		return false
	}
	payload, ok := p.Payload().(proof.Schnorr)
	if !ok {
		return false
	}

	X, err := decodePoint(p, InputPublicKey)
	if err != nil {
		return false
	}
	message, _ := p.PublicInput(InputMessage)

	A := new(curve.Point)
	e := new(curve.Scalar)
	z := new(curve.Scalar)
	if A.UnmarshalHex(payload.Commitment) != nil ||
		e.UnmarshalHex(payload.Challenge) != nil ||
		z.UnmarshalHex(payload.Response) != nil {
		return false
	}

	sch := zksch.Proof{A: A, E: e, Z: z}
	return sch.Verify(hash.New(), zksch.Public{X: X, Message: []byte(message)})
}

// ProveMembership builds the Merkle tree over the ordered set and proves
// that the value sits at the given index.
func (s *Suite) ProveMembership(value []byte, set [][]byte, index int) (*proof.Proof, error) {
	tree, err := merkle.New(set)
	if err != nil {
		return nil, err
	}
	path, err := tree.Proof(index)
	if err != nil {
		return nil, err
	}

	payload := proof.Membership{
		Leaf:  hexDigest(merkle.HashLeaf(value)),
		Path:  make([]string, len(path.Path)),
		Index: append([]uint8(nil), path.Index...),
		Root:  hexDigest(path.Root),
	}
	for i, d := range path.Path {
		payload.Path[i] = hexDigest(d)
	}
	return proof.New(payload, map[string]string{
		InputRoot: hexDigest(path.Root),
	})
}

// VerifyMembership recomputes the Merkle path of a set-membership envelope
// and checks it reproduces the committed root.
func (s *Suite) VerifyMembership(p *proof.Proof) bool {
	if p == nil {
		return false
	}
	payload, ok := p.Payload().(proof.Membership)
	if !ok {
		return false
	}
	root, ok := p.PublicInput(InputRoot)
	if !ok || root != payload.Root {
		return false
	}

	mp, err := membershipToMerkle(payload)
	if err != nil {
		return false
	}
	return mp.Verify()
}

// ProveRange proves that value lies in [min, max] without revealing it.
func (s *Suite) ProveRange(value, min, max int64) (*proof.Proof, error) {
	p, err := zkrange.NewProof(s.rand, hash.New(), zkrange.Public{Min: min, Max: max}, zkrange.Private{Value: value})
	if err != nil {
		return nil, err
	}

	hHex, err := p.H.MarshalHex()
	if err != nil {
		return nil, err
	}
	payload := proof.Range{
		SecondGenerator: hHex,
		Commitments:     make([]string, len(p.Commitments)),
		Challenges:      make([]string, len(p.Challenges)),
		Responses:       make([]string, len(p.Responses)),
		Min:             min,
		Max:             max,
	}
	for i := range p.Commitments {
		cHex, err := p.Commitments[i].MarshalHex()
		if err != nil {
			return nil, err
		}
		payload.Commitments[i] = cHex
		payload.Challenges[i] = p.Challenges[i].MarshalHex()
		payload.Responses[i] = p.Responses[i].MarshalHex()
	}
	return proof.New(payload, map[string]string{
		InputMin:             strconv.FormatInt(min, 10),
		InputMax:             strconv.FormatInt(max, 10),
		InputSecondGenerator: hHex,
	})
}

// VerifyRange checks a range envelope against the bounds stored in its
// public inputs. See the zkrange package documentation for the exact
// guarantees of range verification.
func (s *Suite) VerifyRange(p *proof.Proof) bool {
	if p == nil {
		return false
	}
	payload, ok := p.Payload().(proof.Range)
	if !ok {
		return false
	}
	min, okMin := decodeInt(p, InputMin)
	max, okMax := decodeInt(p, InputMax)
	if !okMin || !okMax {
		return false
	}

	rp, err := rangeToZK(payload)
	if err != nil {
		return false
	}
	return rp.Verify(zkrange.Public{Min: min, Max: max})
}

// ProveOpening proves knowledge of the opening (value, blinding) of the
// Pedersen commitment g^value h^blinding under the given parameters.
//
// The second generator of the parameters must have an unknown discrete log
// relative to g; parameters from zkpedersen.NewParameters guarantee this.
func (s *Suite) ProveOpening(value, blinding *curve.Scalar, pp zkpedersen.Parameters) (*proof.Proof, error) {
	if value == nil || blinding == nil {
		return nil, ErrNilArgument
	}
	if err := pp.Validate(); err != nil {
		return nil, err
	}

	C := pp.Commit(value, blinding)
	p := zkpedersen.NewProof(s.rand, hash.New(), zkpedersen.Public{C: C, Params: pp}, zkpedersen.Private{Value: value, Blinding: blinding})

	cHex, err := C.MarshalHex()
	if err != nil {
		return nil, err
	}
	hHex, err := pp.H.MarshalHex()
	if err != nil {
		return nil, err
	}
	aHex, err := p.A.MarshalHex()
	if err != nil {
		return nil, err
	}
	return proof.New(
		proof.Opening{
			Commitment:       aHex,
			Challenge:        p.E.MarshalHex(),
			ResponseValue:    p.Zv.MarshalHex(),
			ResponseBlinding: p.Zr.MarshalHex(),
		},
		map[string]string{
			InputCommitment:      cHex,
			InputSecondGenerator: hHex,
		},
	)
}

// VerifyOpening checks a commitment-opening envelope against the value
// commitment and second generator stored in its public inputs.
func (s *Suite) VerifyOpening(p *proof.Proof) bool {
	if p == nil {
		return false
	}
	payload, ok := p.Payload().(proof.Opening)
	if !ok {
		return false
	}

	C, err := decodePoint(p, InputCommitment)
	if err != nil {
		return false
	}
	H, err := decodePoint(p, InputSecondGenerator)
	if err != nil {
		return false
	}

	A := new(curve.Point)
	e := new(curve.Scalar)
	zv := new(curve.Scalar)
	zr := new(curve.Scalar)
	if A.UnmarshalHex(payload.Commitment) != nil ||
		e.UnmarshalHex(payload.Challenge) != nil ||
		zv.UnmarshalHex(payload.ResponseValue) != nil ||
		zr.UnmarshalHex(payload.ResponseBlinding) != nil {
		return false
	}

	ped := zkpedersen.Proof{A: A, E: e, Zv: zv, Zr: zr}
	return ped.Verify(hash.New(), zkpedersen.Public{C: C, Params: zkpedersen.Parameters{H: H}})
}

// Verify dispatches an envelope to the verifier of its kind. Unknown kinds
// verify as false.
func (s *Suite) Verify(p *proof.Proof) bool {
	if p == nil {
		return false
	}
	switch p.Type() {
	case proof.TypeKnowledge:
		return s.VerifyKnowledge(p)
	case proof.TypeSetMembership:
		return s.VerifyMembership(p)
	case proof.TypeRange:
		return s.VerifyRange(p)
	case proof.TypeCommitmentOpening:
		return s.VerifyOpening(p)
	default:
		return false
	}
}
