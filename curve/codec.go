package curve

import (
	"math/big"

	"github.com/holiman/uint256"
)

// Codec: pure layout transforms between typed values and the flat big-endian
// wire encoding. Put functions write exactly the type's declared size at the
// start of dst and nothing else; Get functions read exactly that many bytes.
// No range, padding, or curve validation happens here — the engine is the
// validity oracle, and offsets are the caller's responsibility. dst/src are
// expected to be region slices of at least the declared size; anything
// shorter is a caller bug and panics on the slice bounds.

// PutFp writes v as a 64-byte zero-padded big-endian field element.
func PutFp(dst []byte, v *big.Int) {
	v.FillBytes(dst[:FpSize])
}

// GetFp reads a 64-byte field element.
func GetFp(src []byte) *big.Int {
	return new(big.Int).SetBytes(src[:FpSize])
}

// PutFp2 writes e as c0 followed by c1.
func PutFp2(dst []byte, e Fp2) {
	PutFp(dst[:FpSize], e.C0)
	PutFp(dst[FpSize:Fp2Size], e.C1)
}

// GetFp2 reads a 128-byte extension field element.
func GetFp2(src []byte) Fp2 {
	return Fp2{
		C0: GetFp(src[:FpSize]),
		C1: GetFp(src[FpSize:Fp2Size]),
	}
}

// PutG1 writes p as x followed by y. Infinity encodes as 128 zero bytes,
// which falls out of the zero coordinates without a special case.
func PutG1(dst []byte, p G1Point) {
	PutFp(dst[:FpSize], p.X)
	PutFp(dst[FpSize:G1Size], p.Y)
}

// GetG1 reads a 128-byte G1 point.
func GetG1(src []byte) G1Point {
	return G1Point{
		X: GetFp(src[:FpSize]),
		Y: GetFp(src[FpSize:G1Size]),
	}
}

// PutG2 writes p as x.c0, x.c1, y.c0, y.c1.
func PutG2(dst []byte, p G2Point) {
	PutFp2(dst[:Fp2Size], p.X)
	PutFp2(dst[Fp2Size:G2Size], p.Y)
}

// GetG2 reads a 256-byte G2 point.
func GetG2(src []byte) G2Point {
	return G2Point{
		X: GetFp2(src[:Fp2Size]),
		Y: GetFp2(src[Fp2Size:G2Size]),
	}
}

// PutScalar writes s as a 32-byte big-endian scalar. Scalars are not reduced
// modulo the group order; any 256-bit value is a valid encoding.
func PutScalar(dst []byte, s *uint256.Int) {
	b := s.Bytes32()
	copy(dst[:ScalarSize], b[:])
}

// GetScalar reads a 32-byte scalar.
func GetScalar(src []byte) *uint256.Int {
	return new(uint256.Int).SetBytes(src[:ScalarSize])
}
