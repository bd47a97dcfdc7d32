// Package curve wraps the secp256k1 group for use in sigma protocols.
//
// Scalars are always reduced mod the group order q, and points are handled
// in Jacobian coordinates with a compressed 33-byte wire encoding.
package curve

import (
	"encoding/hex"
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrDecoding is wrapped by every scalar or point decoding failure.
var ErrDecoding = errors.New("curve: malformed encoding")

var (
	order *saferith.Modulus

	baseX secp256k1.FieldVal
	baseY secp256k1.FieldVal
)

// Order returns the group order q as a modulus for explicit big-integer
// arithmetic. Intermediate values must be reduced against it, never treated
// as plain machine integers.
func Order() *saferith.Modulus {
	return order
}

// FromHash converts a hash value to a Scalar.
//
// There is some disagreement about how this should be done.
// [NSA] suggests that this is done in the obvious
// manner, but [SECG] truncates the hash to the bit-length of the curve order
// first. We follow [SECG] because that's what OpenSSL does. Additionally,
// OpenSSL right shifts excess bits from the number if the hash is too large
// and we mirror that too.
//
// Taken from crypto/ecdsa.
func FromHash(h []byte) *Scalar {
	orderBits := order.BitLen()
	orderBytes := (orderBits + 7) / 8
	if len(h) > orderBytes {
		h = h[:orderBytes]
	}
	n := new(saferith.Nat).SetBytes(h)
	excess := len(h)*8 - orderBits
	if excess > 0 {
		n.Rsh(n, uint(excess), -1)
	}
	return NewScalar().SetNat(n)
}

func init() {
	qBytes, _ := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	order = saferith.ModulusFromBytes(qBytes)

	gx, _ := hex.DecodeString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	gy, _ := hex.DecodeString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	baseX.SetByteSlice(gx)
	baseY.SetByteSlice(gy)
}
