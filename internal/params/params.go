package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BytesScalar is the canonical big-endian encoding width of a scalar mod q.
	BytesScalar = 32

	// BytesPoint is the width of a compressed curve point: a format byte
	// (0x02 or 0x03) followed by the 32-byte x coordinate.
	BytesPoint = 33

	// BytesDigest is the width of a Merkle node digest (SHA3-256).
	BytesDigest = 32

	// MaxRangeBits caps the bit decomposition of a range statement.
	// Range statements are taken as plain integers, so 64 bits always suffice.
	MaxRangeBits = 64
)
