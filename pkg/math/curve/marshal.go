package curve

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/credo-id/zkcred/internal/params"
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	var scalar secp256k1.ModNScalar
	if len(data) != params.BytesScalar {
		return fmt.Errorf("curve.Scalar: invalid length %d: %w", len(data), ErrDecoding)
	}
	if scalar.SetByteSlice(data) {
		return fmt.Errorf("curve.Scalar: value >= q: %w", ErrDecoding)
	}
	s.s.Set(&scalar)
	return nil
}

// MarshalHex returns the lowercase hex encoding of the canonical scalar bytes.
func (s *Scalar) MarshalHex() string {
	return hex.EncodeToString(s.Bytes())
}

// UnmarshalHex decodes a scalar from its hex encoding.
func (s *Scalar) UnmarshalHex(in string) error {
	data, err := hex.DecodeString(in)
	if err != nil {
		return fmt.Errorf("curve.Scalar: invalid hex: %w", ErrDecoding)
	}
	return s.UnmarshalBinary(data)
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is the 33-byte compressed form; the identity point has no
// encoding and fails to marshal.
func (v *Point) MarshalBinary() ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("curve.Point: nil point: %w", ErrDecoding)
	}
	v.toAffine()
	if v.IsIdentity() {
		return nil, fmt.Errorf("curve.Point: cannot marshal identity: %w", ErrDecoding)
	}

	data := make([]byte, params.BytesPoint)
	format := byte(secp256k1.PubKeyFormatCompressedEven)
	if v.p.Y.IsOdd() {
		format = secp256k1.PubKeyFormatCompressedOdd
	}

	// 0x02 or 0x03 ∥ 32-byte x coordinate
	data[0] = format
	v.p.X.PutBytesUnchecked(data[1:])
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *Point) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesPoint {
		return fmt.Errorf("curve.Point: invalid length %d: %w", len(data), ErrDecoding)
	}
	format := data[0]
	if format != secp256k1.PubKeyFormatCompressedOdd && format != secp256k1.PubKeyFormatCompressedEven {
		return fmt.Errorf("curve.Point: incorrect format byte: %w", ErrDecoding)
	}

	var x, y secp256k1.FieldVal
	if overflow := x.SetByteSlice(data[1:]); overflow {
		return fmt.Errorf("curve.Point: x >= field prime: %w", ErrDecoding)
	}

	// Recover the y coordinate with the oddness selected by the format byte.
	wantOddY := format == secp256k1.PubKeyFormatCompressedOdd
	if !secp256k1.DecompressY(&x, wantOddY, &y) {
		return fmt.Errorf("curve.Point: x not on curve: %w", ErrDecoding)
	}
	y.Normalize()
	v.p.X.Set(&x)
	v.p.Y.Set(&y)
	v.p.Z.SetInt(1)
	return nil
}

// MarshalHex returns the lowercase hex encoding of the compressed point.
func (v *Point) MarshalHex() (string, error) {
	data, err := v.MarshalBinary()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// UnmarshalHex decodes a point from its compressed hex encoding.
func (v *Point) UnmarshalHex(in string) error {
	data, err := hex.DecodeString(in)
	if err != nil {
		return fmt.Errorf("curve.Point: invalid hex: %w", ErrDecoding)
	}
	return v.UnmarshalBinary(data)
}

// MarshalJSON implements json.Marshaler.
func (s *Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.MarshalHex())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var in string
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("curve.Scalar: %w", ErrDecoding)
	}
	return s.UnmarshalHex(in)
}

// MarshalJSON implements json.Marshaler.
func (v *Point) MarshalJSON() ([]byte, error) {
	out, err := v.MarshalHex()
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Point) UnmarshalJSON(data []byte) error {
	var in string
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("curve.Point: %w", ErrDecoding)
	}
	return v.UnmarshalHex(in)
}

// String implements fmt.Stringer.
func (v *Point) String() string {
	if v == nil {
		return "nil"
	}
	if v.IsIdentity() {
		return "Point{Identity}"
	}
	out, _ := v.MarshalHex()
	return "Point{" + out + "}"
}

// String implements fmt.Stringer.
func (s *Scalar) String() string {
	if s == nil {
		return "nil"
	}
	return s.MarshalHex()
}
