package zkcred

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/credo-id/zkcred/pkg/math/curve"
	"github.com/credo-id/zkcred/pkg/merkle"
	"github.com/credo-id/zkcred/pkg/proof"
	zkrange "github.com/credo-id/zkcred/pkg/zk/rangeproof"
)

func hexDigest(d merkle.Digest) string {
	return hex.EncodeToString(d)
}

func decodePoint(p *proof.Proof, name string) (*curve.Point, error) {
	in, ok := p.PublicInput(name)
	if !ok {
		return nil, fmt.Errorf("zkcred: missing public input %q", name)
	}
	v := new(curve.Point)
	if err := v.UnmarshalHex(in); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeInt(p *proof.Proof, name string) (int64, bool) {
	in, ok := p.PublicInput(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(in, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// membershipToMerkle rebuilds the merkle.Proof from its hex payload. Any
// malformed digest fails the conversion, which the verifier reports as a
// plain false.
func membershipToMerkle(payload proof.Membership) (*merkle.Proof, error) {
	leaf, err := hex.DecodeString(payload.Leaf)
	if err != nil {
		return nil, err
	}
	root, err := hex.DecodeString(payload.Root)
	if err != nil {
		return nil, err
	}
	out := &merkle.Proof{
		Leaf:  leaf,
		Path:  make([]merkle.Digest, len(payload.Path)),
		Index: append([]uint8(nil), payload.Index...),
		Root:  root,
	}
	for i, s := range payload.Path {
		d, err := hex.DecodeString(s)
		if err != nil {
			return nil, err
		}
		out.Path[i] = d
	}
	return out, nil
}

// rangeToZK rebuilds the zkrange.Proof from its hex payload.
func rangeToZK(payload proof.Range) (*zkrange.Proof, error) {
	if len(payload.Challenges) != len(payload.Commitments) || len(payload.Responses) != len(payload.Commitments) {
		return nil, fmt.Errorf("zkcred: range payload sequences are not parallel")
	}

	H := new(curve.Point)
	if err := H.UnmarshalHex(payload.SecondGenerator); err != nil {
		return nil, err
	}
	out := &zkrange.Proof{
		H:           H,
		Commitments: make([]*curve.Point, len(payload.Commitments)),
		Challenges:  make([]*curve.Scalar, len(payload.Challenges)),
		Responses:   make([]*curve.Scalar, len(payload.Responses)),
		Min:         payload.Min,
		Max:         payload.Max,
	}
	for i := range payload.Commitments {
		c := new(curve.Point)
		if err := c.UnmarshalHex(payload.Commitments[i]); err != nil {
			return nil, err
		}
		e := new(curve.Scalar)
		if err := e.UnmarshalHex(payload.Challenges[i]); err != nil {
			return nil, err
		}
		z := new(curve.Scalar)
		if err := z.UnmarshalHex(payload.Responses[i]); err != nil {
			return nil, err
		}
		out.Commitments[i] = c
		out.Challenges[i] = e
		out.Responses[i] = z
	}
	return out, nil
}
