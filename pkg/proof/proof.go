// Package proof defines the serializable envelope a prover hands to its
// collaborators: a proof kind, a creation instant, the named public inputs of
// the statement, and one kind-specific payload of hex-encoded scalars and
// points. An envelope is created once by a generator and never mutated; it is
// safe to embed verbatim in a credential document or a QR payload.
package proof

import (
	"fmt"
	"time"
)

// Type tags the closed set of proof kinds.
type Type string

const (
	TypeKnowledge         Type = "knowledge-of-exponent"
	TypeSetMembership     Type = "set-membership"
	TypeRange             Type = "range"
	TypeCommitmentOpening Type = "commitment-opening"
)

// Payload is the kind-specific proof data. Exactly one concrete payload
// exists per Type, so a verifier only ever sees the fields of its own kind.
type Payload interface {
	Type() Type
}

// Schnorr is the payload of a knowledge-of-exponent proof.
type Schnorr struct {
	// Commitment is the nonce commitment A, a compressed hex point.
	Commitment string `json:"commitment"`
	Challenge  string `json:"challenge"`
	Response   string `json:"response"`
}

func (Schnorr) Type() Type { return TypeKnowledge }

// Membership is the payload of a Merkle set-membership proof.
type Membership struct {
	// Leaf is the hex digest of the proven value.
	Leaf string `json:"leaf"`
	// Path holds the sibling digests from leaf to root.
	Path []string `json:"path"`
	// Index[i] is 0 when the running node is a left child at level i, 1
	// when it is a right child.
	Index []uint8 `json:"index"`
	Root  string  `json:"root"`
}

func (Membership) Type() Type { return TypeSetMembership }

// Range is the payload of a bit-decomposition range proof. The three
// sequences run in parallel, one slot per bit, least significant first.
type Range struct {
	SecondGenerator string   `json:"h"`
	Commitments     []string `json:"commitments"`
	Challenges      []string `json:"challenges"`
	Responses       []string `json:"responses"`
	Min             int64    `json:"min"`
	Max             int64    `json:"max"`
}

func (Range) Type() Type { return TypeRange }

// Opening is the payload of a Pedersen commitment-opening proof. Commitment
// is the proof-of-knowledge commitment A, distinct from the value commitment
// named in the public inputs.
type Opening struct {
	Commitment       string `json:"commitment"`
	Challenge        string `json:"challenge"`
	ResponseValue    string `json:"responseValue"`
	ResponseBlinding string `json:"responseBlinding"`
}

func (Opening) Type() Type { return TypeCommitmentOpening }

// Proof is the immutable envelope around one payload.
type Proof struct {
	createdAt    time.Time
	publicInputs map[string]string
	payload      Payload
}

// New wraps a payload and the public inputs of its statement. The input map
// is copied, so later mutation by the caller does not reach the proof.
func New(payload Payload, publicInputs map[string]string) (*Proof, error) {
	if payload == nil {
		return nil, fmt.Errorf("proof: nil payload")
	}
	inputs := make(map[string]string, len(publicInputs))
	for k, v := range publicInputs {
		inputs[k] = v
	}
	return &Proof{
		createdAt:    time.Now().UTC(),
		publicInputs: inputs,
		payload:      payload,
	}, nil
}

// Type returns the kind of the wrapped payload.
func (p *Proof) Type() Type {
	if p.payload == nil {
		return ""
	}
	return p.payload.Type()
}

// CreatedAt returns the creation instant of the proof.
func (p *Proof) CreatedAt() time.Time {
	return p.createdAt
}

// PublicInput returns one named public value of the statement.
func (p *Proof) PublicInput(name string) (string, bool) {
	v, ok := p.publicInputs[name]
	return v, ok
}

// PublicInputs returns a copy of the public statement values.
func (p *Proof) PublicInputs() map[string]string {
	out := make(map[string]string, len(p.publicInputs))
	for k, v := range p.publicInputs {
		out[k] = v
	}
	return out
}

// Payload returns the kind-specific proof data.
func (p *Proof) Payload() Payload {
	return p.payload
}
