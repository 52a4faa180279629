package curve

import (
	"math/big"

	"github.com/curvebind/bls12381/arena"
)

// Zero-copy views over engine output. A view is header bookkeeping only — an
// (arena, region) pair mirroring the nested wire layout — and never copies
// payload bytes. Sub-views are derived by offset arithmetic into the same
// region. A view is valid only while its underlying arena region is neither
// overwritten nor reclaimed; callers must not retain one beyond the scope
// that guarantees the buffer's stability.

// FpView is a view of one encoded field element.
type FpView struct {
	a *arena.Arena
	r arena.Region
}

// Bytes returns the aliased 64-byte encoding.
func (v FpView) Bytes() []byte { return v.a.Bytes(v.r) }

// Value decodes the element into a fresh big.Int.
func (v FpView) Value() *big.Int { return GetFp(v.Bytes()) }

// Fp2View is a view of one encoded extension field element.
type Fp2View struct {
	a *arena.Arena
	r arena.Region
}

// Bytes returns the aliased 128-byte encoding.
func (v Fp2View) Bytes() []byte { return v.a.Bytes(v.r) }

// C0 returns the view of the real component.
func (v Fp2View) C0() FpView { return FpView{a: v.a, r: v.r.Slice(0, FpSize)} }

// C1 returns the view of the imaginary component.
func (v Fp2View) C1() FpView { return FpView{a: v.a, r: v.r.Slice(FpSize, FpSize)} }

// Value decodes the element.
func (v Fp2View) Value() Fp2 { return GetFp2(v.Bytes()) }

// G1View is a view of one encoded G1 point.
type G1View struct {
	a *arena.Arena
	r arena.Region
}

// ViewG1 wraps the first G1Size bytes of r as a G1 view. Only the header is
// allocated; the payload stays in place.
func ViewG1(a *arena.Arena, r arena.Region) G1View {
	return G1View{a: a, r: r.Slice(0, G1Size)}
}

// Bytes returns the aliased 128-byte encoding.
func (v G1View) Bytes() []byte { return v.a.Bytes(v.r) }

// X returns the view of the x coordinate.
func (v G1View) X() FpView { return FpView{a: v.a, r: v.r.Slice(0, FpSize)} }

// Y returns the view of the y coordinate.
func (v G1View) Y() FpView { return FpView{a: v.a, r: v.r.Slice(FpSize, FpSize)} }

// IsInfinity reports whether the viewed encoding is the all-zero sentinel.
func (v G1View) IsInfinity() bool { return isZero(v.Bytes()) }

// Point decodes the viewed bytes into an owned G1Point.
func (v G1View) Point() G1Point { return GetG1(v.Bytes()) }

// G2View is a view of one encoded G2 point.
type G2View struct {
	a *arena.Arena
	r arena.Region
}

// ViewG2 wraps the first G2Size bytes of r as a G2 view.
func ViewG2(a *arena.Arena, r arena.Region) G2View {
	return G2View{a: a, r: r.Slice(0, G2Size)}
}

// Bytes returns the aliased 256-byte encoding.
func (v G2View) Bytes() []byte { return v.a.Bytes(v.r) }

// X returns the view of the x coordinate.
func (v G2View) X() Fp2View { return Fp2View{a: v.a, r: v.r.Slice(0, Fp2Size)} }

// Y returns the view of the y coordinate.
func (v G2View) Y() Fp2View { return Fp2View{a: v.a, r: v.r.Slice(Fp2Size, Fp2Size)} }

// IsInfinity reports whether the viewed encoding is the all-zero sentinel.
func (v G2View) IsInfinity() bool { return isZero(v.Bytes()) }

// Point decodes the viewed bytes into an owned G2Point.
func (v G2View) Point() G2Point { return GetG2(v.Bytes()) }

// isZero checks if all bytes are zero.
func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
