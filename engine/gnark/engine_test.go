package gnark

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/curvebind/bls12381/curve"
	"github.com/curvebind/bls12381/engine"
)

// Doubled generator coordinates, the standard g+g vectors for both groups.
var (
	g1DoubleX = fpHex("0x0572cbea904d67468808c8eb50a9450c9721db309128012543902d0ac358a62ae28f75bb8f1c7c42c39a8c5529bf0f4e")
	g1DoubleY = fpHex("0x166a9d8cabc673a322fda673779d8e3822ba3ecb8670e461f73bb9021d5fd76a4c56d9d4cd16bd1bba86881979749d28")

	g2DoubleXC0 = fpHex("0x1638533957d540a9d2370f17cc7ed5863bc0b995b8825e0ee1ea1e1e4d00dbae81f14b0bf3611b78c952aacab827a053")
	g2DoubleXC1 = fpHex("0x0a4edef9c1ed7f729f520e47730a124fd70662a904ba1074728114d1031e1572c6c886f6b57ec72a6178288c47c33577")
	g2DoubleYC0 = fpHex("0x0468fb440d82b0630aeb8dca2b5256789a66da69bf91009cbfe6bd221e47aa8ae88dece9764bf3bd999d95d71e4c9899")
	g2DoubleYC1 = fpHex("0x0f6d4552fa65dd2638b361543f887136a43253d9c66c411697003f7a13c308f5422e1aa0a59c8967acdefd8b6e36ccf3")

	// A point on the G1 curve but outside the prime-order subgroup
	// (x = 4, y the even square root of x^3 + 4).
	g1OffSubgroupX = big.NewInt(4)
	g1OffSubgroupY = fpHex("0x0a989badd40d6212b33cffc3f3763e9bc760f988c9926b26da9dd85e928483446346b8ed00e1de5d5ea93e354abe706c")
)

func fpHex(s string) *big.Int {
	return new(big.Int).SetBytes(hexutil.MustDecode(s))
}

func encG1(p curve.G1Point) []byte {
	buf := make([]byte, curve.G1Size)
	curve.PutG1(buf, p)
	return buf
}

func encG2(p curve.G2Point) []byte {
	buf := make([]byte, curve.G2Size)
	curve.PutG2(buf, p)
	return buf
}

func encScalar(v uint64) []byte {
	buf := make([]byte, curve.ScalarSize)
	curve.PutScalar(buf, uint256.NewInt(v))
	return buf
}

func mustExecute(t *testing.T, op engine.Op, input []byte) []byte {
	t.Helper()
	out, err := New().Execute(op, input)
	if err != nil {
		t.Fatalf("%s failed: %v", op, err)
	}
	if len(out) != op.OutputSize() {
		t.Fatalf("%s returned %d bytes, want %d", op, len(out), op.OutputSize())
	}
	return out
}

// TestG1AddGeneratorDoubling verifies g + g against the known 2g literal.
func TestG1AddGeneratorDoubling(t *testing.T) {
	gen := encG1(curve.G1Generator())
	out := mustExecute(t, engine.OpG1Add, append(append([]byte{}, gen...), gen...))

	want := encG1(curve.G1Point{X: g1DoubleX, Y: g1DoubleY})
	if !bytes.Equal(out, want) {
		t.Errorf("g1 doubling = %x, want %x", out, want)
	}
}

// TestG2AddGeneratorDoubling verifies the same for G2.
func TestG2AddGeneratorDoubling(t *testing.T) {
	gen := encG2(curve.G2Generator())
	out := mustExecute(t, engine.OpG2Add, append(append([]byte{}, gen...), gen...))

	want := encG2(curve.G2Point{
		X: curve.Fp2{C0: g2DoubleXC0, C1: g2DoubleXC1},
		Y: curve.Fp2{C0: g2DoubleYC0, C1: g2DoubleYC1},
	})
	if !bytes.Equal(out, want) {
		t.Errorf("g2 doubling = %x, want %x", out, want)
	}
}

// TestAddIdentity verifies p + infinity = p in both groups.
func TestAddIdentity(t *testing.T) {
	g1 := encG1(curve.G1Generator())
	out := mustExecute(t, engine.OpG1Add, append(append([]byte{}, g1...), encG1(curve.G1Infinity())...))
	if !bytes.Equal(out, g1) {
		t.Error("g1 + infinity != g1")
	}

	g2 := encG2(curve.G2Generator())
	out = mustExecute(t, engine.OpG2Add, append(append([]byte{}, encG2(curve.G2Infinity())...), g2...))
	if !bytes.Equal(out, g2) {
		t.Error("infinity + g2 != g2")
	}
}

// TestG1MSMMatchesAdd verifies msm([g], [2]) == add(g, g).
func TestG1MSMMatchesAdd(t *testing.T) {
	input := append(encG1(curve.G1Generator()), encScalar(2)...)
	out := mustExecute(t, engine.OpG1MSM, input)

	want := encG1(curve.G1Point{X: g1DoubleX, Y: g1DoubleY})
	if !bytes.Equal(out, want) {
		t.Errorf("msm by 2 = %x, want doubled generator", out)
	}
}

// TestG2MSMMatchesAdd verifies the same for G2.
func TestG2MSMMatchesAdd(t *testing.T) {
	input := append(encG2(curve.G2Generator()), encScalar(2)...)
	out := mustExecute(t, engine.OpG2MSM, input)

	want := encG2(curve.G2Point{
		X: curve.Fp2{C0: g2DoubleXC0, C1: g2DoubleXC1},
		Y: curve.Fp2{C0: g2DoubleYC0, C1: g2DoubleYC1},
	})
	if !bytes.Equal(out, want) {
		t.Errorf("g2 msm by 2 = %x, want doubled generator", out)
	}
}

// TestMSMByZeroIsInfinity verifies scalar 0 collapses to the identity.
func TestMSMByZeroIsInfinity(t *testing.T) {
	input := append(encG1(curve.G1Generator()), encScalar(0)...)
	out := mustExecute(t, engine.OpG1MSM, input)
	if !bytes.Equal(out, make([]byte, curve.G1Size)) {
		t.Error("msm by 0 did not return the infinity encoding")
	}
}

// TestMSMCancellation verifies g*1 + (-g)*1 sums to infinity across a batch.
func TestMSMCancellation(t *testing.T) {
	input := append(encG1(curve.G1Generator()), encScalar(1)...)
	input = append(input, encG1(curve.G1NegGenerator())...)
	input = append(input, encScalar(1)...)
	out := mustExecute(t, engine.OpG1MSM, input)
	if !bytes.Equal(out, make([]byte, curve.G1Size)) {
		t.Error("g - g did not return the infinity encoding")
	}
}

// TestPairingIdentity verifies e(inf, inf) checks out as the identity.
func TestPairingIdentity(t *testing.T) {
	input := append(encG1(curve.G1Infinity()), encG2(curve.G2Infinity())...)
	out := mustExecute(t, engine.OpPairingCheck, input)
	if out[31] != 1 {
		t.Error("pairing of infinities is not the identity")
	}
}

// TestPairingCancellation verifies e(g, h) * e(-g, h) = 1.
func TestPairingCancellation(t *testing.T) {
	input := append(encG1(curve.G1Generator()), encG2(curve.G2Generator())...)
	input = append(input, encG1(curve.G1NegGenerator())...)
	input = append(input, encG2(curve.G2Generator())...)
	out := mustExecute(t, engine.OpPairingCheck, input)
	if out[31] != 1 {
		t.Error("cancelling pairing product did not equal the identity")
	}
}

// TestPairingNonIdentity verifies a single generator pairing is not the
// identity and the leading 31 bytes stay zero either way.
func TestPairingNonIdentity(t *testing.T) {
	input := append(encG1(curve.G1Generator()), encG2(curve.G2Generator())...)
	out := mustExecute(t, engine.OpPairingCheck, input)
	if out[31] != 0 {
		t.Error("e(g, h) reported as identity")
	}
	for i := 0; i < 31; i++ {
		if out[i] != 0 {
			t.Fatalf("pairing output byte %d nonzero", i)
		}
	}
}

// TestMapDeterministicAndInSubgroup verifies map-to-curve is a pure function
// of its input and its output passes the engine's own subgroup check (via an
// MSM by 1 round trip).
func TestMapDeterministicAndInSubgroup(t *testing.T) {
	for _, seed := range []string{"curvebind-map-g1-0", "curvebind-map-g1-1"} {
		input := make([]byte, curve.FpSize)
		digest := sha3.Sum256([]byte(seed)) // any 256-bit value is below the 381-bit modulus
		copy(input[curve.FpSize-len(digest):], digest[:])

		first := mustExecute(t, engine.OpMapFpToG1, input)
		second := mustExecute(t, engine.OpMapFpToG1, input)
		if !bytes.Equal(first, second) {
			t.Fatalf("map-to-g1 not deterministic for seed %q", seed)
		}
		if bytes.Equal(first, make([]byte, curve.G1Size)) {
			t.Fatalf("map-to-g1 of %q is the infinity encoding", seed)
		}

		msm := append(append([]byte{}, first...), encScalar(1)...)
		echo := mustExecute(t, engine.OpG1MSM, msm)
		if !bytes.Equal(echo, first) {
			t.Error("mapped point failed the subgroup-checked msm round trip")
		}
	}
}

// TestMapFp2Deterministic verifies the extension-field map as well.
func TestMapFp2Deterministic(t *testing.T) {
	input := make([]byte, curve.Fp2Size)
	d0 := sha3.Sum256([]byte("curvebind-map-g2-c0"))
	d1 := sha3.Sum256([]byte("curvebind-map-g2-c1"))
	copy(input[curve.FpSize-len(d0):curve.FpSize], d0[:])
	copy(input[curve.Fp2Size-len(d1):], d1[:])

	first := mustExecute(t, engine.OpMapFp2ToG2, input)
	second := mustExecute(t, engine.OpMapFp2ToG2, input)
	if !bytes.Equal(first, second) {
		t.Fatal("map-to-g2 not deterministic")
	}

	msm := append(append([]byte{}, first...), encScalar(1)...)
	echo := mustExecute(t, engine.OpG2MSM, msm)
	if !bytes.Equal(echo, first) {
		t.Error("mapped G2 point failed the subgroup-checked msm round trip")
	}
}

// TestRejectBadLengths verifies every op rejects a truncated input.
func TestRejectBadLengths(t *testing.T) {
	ops := []engine.Op{
		engine.OpG1Add, engine.OpG2Add,
		engine.OpG1MSM, engine.OpG2MSM,
		engine.OpPairingCheck,
		engine.OpMapFpToG1, engine.OpMapFp2ToG2,
	}
	for _, op := range ops {
		if _, err := New().Execute(op, make([]byte, 33)); err == nil {
			t.Errorf("%s accepted a 33-byte input", op)
		}
		if _, err := New().Execute(op, nil); err == nil {
			t.Errorf("%s accepted an empty input", op)
		}
	}
}

// TestRejectBadFieldElement verifies nonzero padding and non-canonical
// values are rejected.
func TestRejectBadFieldElement(t *testing.T) {
	// Nonzero pad byte on an otherwise valid generator encoding.
	dirty := append(encG1(curve.G1Generator()), encG1(curve.G1Generator())...)
	dirty[0] = 1
	if _, err := New().Execute(engine.OpG1Add, dirty); err == nil {
		t.Error("nonzero padding accepted")
	}

	// x coordinate equal to the modulus.
	overP := make([]byte, 2*curve.G1Size)
	curve.PutFp(overP[:curve.FpSize], curve.Modulus)
	if _, err := New().Execute(engine.OpG1Add, overP); err == nil {
		t.Error("coordinate >= p accepted")
	}
}

// TestRejectOffCurve verifies a coordinate pair not on the curve is rejected.
func TestRejectOffCurve(t *testing.T) {
	bad := curve.G1Generator()
	bad.Y = new(big.Int).Add(bad.Y, big.NewInt(1))
	input := append(encG1(bad), encG1(curve.G1Generator())...)
	if _, err := New().Execute(engine.OpG1Add, input); err == nil {
		t.Error("off-curve point accepted by add")
	}
}

// TestSubgroupCheckSplit verifies the EIP-2537 validation split: add accepts
// an on-curve point outside the subgroup, msm and pairing reject it.
func TestSubgroupCheckSplit(t *testing.T) {
	offSub := curve.G1Point{X: g1OffSubgroupX, Y: g1OffSubgroupY}

	addInput := append(encG1(offSub), encG1(curve.G1Infinity())...)
	if _, err := New().Execute(engine.OpG1Add, addInput); err != nil {
		t.Errorf("add rejected an on-curve point: %v", err)
	}

	msmInput := append(encG1(offSub), encScalar(1)...)
	if _, err := New().Execute(engine.OpG1MSM, msmInput); err == nil {
		t.Error("msm accepted a point outside the subgroup")
	}

	pairInput := append(encG1(offSub), encG2(curve.G2Generator())...)
	if _, err := New().Execute(engine.OpPairingCheck, pairInput); err == nil {
		t.Error("pairing accepted a point outside the subgroup")
	}
}
