package selection

import "encoding/binary"

// XOR returns the bitwise XOR of a and b read as big-endian unsigned integers.
// The shorter operand is zero-extended on the left, so the result has the
// length of the longer one.
func XOR(a, b []byte) []byte {
	if len(a) < len(b) {
		a, b = b, a
	}

	out := make([]byte, len(a))
	copy(out, a)

	offset := len(a) - len(b)
	for i, v := range b {
		out[offset+i] ^= v
	}

	return out
}

// Distance returns the ranking key between a round reference and a candidate.
// The key is the XOR distance reduced modulo 2^64: only the least significant
// 64 bits are compared, higher bits never influence the ranking.
func Distance(reference, candidate []byte) uint64 {
	return low64(XOR(reference, candidate))
}

// low64 returns the least significant 64 bits of a big-endian integer.
func low64(b []byte) uint64 {
	if len(b) >= 8 {
		return binary.BigEndian.Uint64(b[len(b)-8:])
	}

	var buf [8]byte
	copy(buf[8-len(b):], b)

	return binary.BigEndian.Uint64(buf[:])
}

// effectiveDistance applies the weight of candidate i to its distance.
// Missing or zero weights leave the distance unchanged.
func effectiveDistance(distance uint64, weights []uint64, i int) uint64 {
	if i >= len(weights) || weights[i] == 0 {
		return distance
	}

	return distance / weights[i]
}
