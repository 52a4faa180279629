// Package curve defines the typed data model for BLS12-381 call staging —
// base and extension field elements, G1/G2 points, and scalars — together
// with the flat byte codec and the zero-copy views used to read engine
// output in place.
//
// The types here are plain values with no arithmetic: curve math, on-curve
// checks, and subgroup checks all belong to the engine. The point at
// infinity is represented by the conventional all-zero coordinates used on
// the wire, not by an actual curve point.
package curve

import "math/big"

// Encoded sizes in bytes for every wire type.
const (
	FpSize     = 64  // field element, 16 zero bytes + 48-byte big-endian value
	Fp2Size    = 128 // c0 then c1
	G1Size     = 128 // x then y
	G2Size     = 256 // x.c0, x.c1, y.c0, y.c1
	ScalarSize = 32  // big-endian Fr scalar, any 256-bit value
)

// Modulus is the BLS12-381 base field modulus p.
var Modulus = mustBig("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")

// Order is the order r of the prime-order subgroups of G1 and G2.
var Order = mustBig("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")

// Fp2 is an element c0 + c1·v of the quadratic extension field.
type Fp2 struct {
	C0 *big.Int
	C1 *big.Int
}

// IsZero reports whether both components are zero.
func (e Fp2) IsZero() bool {
	return e.C0.Sign() == 0 && e.C1.Sign() == 0
}

// Equal reports component-wise equality.
func (e Fp2) Equal(o Fp2) bool {
	return e.C0.Cmp(o.C0) == 0 && e.C1.Cmp(o.C1) == 0
}

// G1Point is an affine G1 point. Zero coordinates mean the point at infinity.
type G1Point struct {
	X *big.Int
	Y *big.Int
}

// IsInfinity reports whether p is the all-zero infinity sentinel.
func (p G1Point) IsInfinity() bool {
	return p.X.Sign() == 0 && p.Y.Sign() == 0
}

// Equal reports coordinate-wise equality.
func (p G1Point) Equal(q G1Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// G2Point is an affine G2 point over Fp2. Zero coordinates mean infinity.
type G2Point struct {
	X Fp2
	Y Fp2
}

// IsInfinity reports whether p is the all-zero infinity sentinel.
func (p G2Point) IsInfinity() bool {
	return p.X.IsZero() && p.Y.IsZero()
}

// Equal reports coordinate-wise equality.
func (p G2Point) Equal(q G2Point) bool {
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

// Generator and infinity literals. Accessors below hand out fresh copies so
// callers cannot mutate the package state through the shared big.Ints.
var (
	g1GenX = mustBig("17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb")
	g1GenY = mustBig("08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1")
	// p - g1GenY
	g1NegGenY = mustBig("114d1d6855d545a8aa7d76c8cf2e21f267816aef1db507c96655b9d5caac42364e6f38ba0ecb751bad54dcd6b939c2ca")

	g2GenXC0 = mustBig("024aa2b2f08f0a91260805272dc51051c6e47ad4fa403b02b4510b647ae3d1770bac0326a805bbefd48056c8c121bdb8")
	g2GenXC1 = mustBig("13e02b6052719f607dacd3a088274f65596bd0d09920b61ab5da61bbdc7f5049334cf11213945d57e5ac7d055d042b7e")
	g2GenYC0 = mustBig("0ce5d527727d6e118cc9cdc6da2e351aadfd9baa8cbdd3a76d429a695160d12c923ac9cc3baca289e193548608b82801")
	g2GenYC1 = mustBig("0606c4a02ea734cc32acd2b02bc28b99cb3e287e85a763af267492ab572e99ab3f370d275cec1da1aaa9075ff05f79be")
	// p - g2GenY, component-wise
	g2NegGenYC0 = mustBig("0d1b3cc2c7027888be51d9ef691d77bcb679afda66c73f17f9ee3837a55024f78c71363275a75d75d86bab79f74782aa")
	g2NegGenYC1 = mustBig("13fa4d4a0ad8b1ce186ed5061789213d993923066dddaf1040bc3ff59f825c78df74f2d75467e25e0f55f8a00fa030ed")
)

// G1Generator returns the canonical G1 generator.
func G1Generator() G1Point {
	return G1Point{X: new(big.Int).Set(g1GenX), Y: new(big.Int).Set(g1GenY)}
}

// G1NegGenerator returns the negation of the G1 generator.
func G1NegGenerator() G1Point {
	return G1Point{X: new(big.Int).Set(g1GenX), Y: new(big.Int).Set(g1NegGenY)}
}

// G1Infinity returns the G1 point-at-infinity sentinel.
func G1Infinity() G1Point {
	return G1Point{X: new(big.Int), Y: new(big.Int)}
}

// G2Generator returns the canonical G2 generator.
func G2Generator() G2Point {
	return G2Point{
		X: Fp2{C0: new(big.Int).Set(g2GenXC0), C1: new(big.Int).Set(g2GenXC1)},
		Y: Fp2{C0: new(big.Int).Set(g2GenYC0), C1: new(big.Int).Set(g2GenYC1)},
	}
}

// G2NegGenerator returns the negation of the G2 generator.
func G2NegGenerator() G2Point {
	return G2Point{
		X: Fp2{C0: new(big.Int).Set(g2GenXC0), C1: new(big.Int).Set(g2GenXC1)},
		Y: Fp2{C0: new(big.Int).Set(g2NegGenYC0), C1: new(big.Int).Set(g2NegGenYC1)},
	}
}

// G2Infinity returns the G2 point-at-infinity sentinel.
func G2Infinity() G2Point {
	return G2Point{
		X: Fp2{C0: new(big.Int), C1: new(big.Int)},
		Y: Fp2{C0: new(big.Int), C1: new(big.Int)},
	}
}

func mustBig(hex string) *big.Int {
	v, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("curve: bad constant " + hex)
	}
	return v
}
