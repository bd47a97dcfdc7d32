package proof

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// envelope is the wire shape shared by the JSON and CBOR encodings. The
// payload stays raw until the type tag tells us which variant to decode.
type envelope struct {
	Type         Type              `json:"type" cbor:"type"`
	CreatedAt    time.Time         `json:"createdAt" cbor:"createdAt"`
	PublicInputs map[string]string `json:"publicInputs,omitempty" cbor:"publicInputs,omitempty"`
}

type jsonEnvelope struct {
	envelope
	Payload json.RawMessage `json:"payload"`
}

type cborEnvelope struct {
	envelope
	Payload cbor.RawMessage `cbor:"payload"`
}

func emptyPayload(t Type) (Payload, error) {
	switch t {
	case TypeKnowledge:
		return &Schnorr{}, nil
	case TypeSetMembership:
		return &Membership{}, nil
	case TypeRange:
		return &Range{}, nil
	case TypeCommitmentOpening:
		return &Opening{}, nil
	default:
		return nil, fmt.Errorf("proof: unknown type %q", t)
	}
}

func (p *Proof) header() envelope {
	return envelope{
		Type:         p.Type(),
		CreatedAt:    p.createdAt,
		PublicInputs: p.publicInputs,
	}
}

func (p *Proof) fromParts(header envelope, payload Payload) error {
	if payload.Type() != header.Type {
		return fmt.Errorf("proof: payload type %q does not match envelope type %q", payload.Type(), header.Type)
	}
	p.createdAt = header.CreatedAt
	p.publicInputs = header.PublicInputs
	if p.publicInputs == nil {
		p.publicInputs = map[string]string{}
	}
	p.payload = payload
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *Proof) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(p.payload)
	if err != nil {
		return nil, fmt.Errorf("proof: marshal payload: %w", err)
	}
	return json.Marshal(&jsonEnvelope{envelope: p.header(), Payload: payload})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Proof) UnmarshalJSON(data []byte) error {
	var e jsonEnvelope
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("proof: unmarshal envelope: %w", err)
	}
	payload, err := emptyPayload(e.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(e.Payload, payload); err != nil {
		return fmt.Errorf("proof: unmarshal %q payload: %w", e.Type, err)
	}
	return p.fromParts(e.envelope, deref(payload))
}

// MarshalCBOR implements cbor.Marshaler.
func (p *Proof) MarshalCBOR() ([]byte, error) {
	payload, err := cbor.Marshal(p.payload)
	if err != nil {
		return nil, fmt.Errorf("proof: marshal payload: %w", err)
	}
	return cbor.Marshal(&cborEnvelope{envelope: p.header(), Payload: payload})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (p *Proof) UnmarshalCBOR(data []byte) error {
	var e cborEnvelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("proof: unmarshal envelope: %w", err)
	}
	payload, err := emptyPayload(e.Type)
	if err != nil {
		return err
	}
	if err := cbor.Unmarshal(e.Payload, payload); err != nil {
		return fmt.Errorf("proof: unmarshal %q payload: %w", e.Type, err)
	}
	return p.fromParts(e.envelope, deref(payload))
}

// deref converts the pointer needed for decoding back to the value variant
// stored in the envelope.
func deref(p Payload) Payload {
	switch t := p.(type) {
	case *Schnorr:
		return *t
	case *Membership:
		return *t
	case *Range:
		return *t
	case *Opening:
		return *t
	default:
		return p
	}
}
