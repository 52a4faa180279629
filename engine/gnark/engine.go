// Package gnark implements the curve-arithmetic engine on top of
// gnark-crypto's BLS12-381 package. It is the production backend behind the
// engine.Engine interface: all field, curve, subgroup, pairing, and
// map-to-curve math is delegated to gnark-crypto, and this package only
// translates between the flat wire encoding and gnark-crypto's types.
package gnark

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/curvebind/bls12381/curve"
	"github.com/curvebind/bls12381/engine"
)

var (
	errInvalidInputLength = errors.New("gnark: invalid input length")
	errInvalidFieldPad    = errors.New("gnark: invalid field element top bytes")
	errInvalidField       = errors.New("gnark: invalid field element")
	errNotOnCurve         = errors.New("gnark: point not on curve")
	errNotInSubgroup      = errors.New("gnark: point not in correct subgroup")
)

// Engine executes the seven fixed operations with gnark-crypto arithmetic.
// It is stateless and safe for concurrent use.
type Engine struct{}

// New returns a gnark-crypto backed engine.
func New() *Engine {
	return &Engine{}
}

// Execute runs op over input and returns exactly op.OutputSize() bytes on
// success. It never retains input.
func (e *Engine) Execute(op engine.Op, input []byte) ([]byte, error) {
	switch op {
	case engine.OpG1Add:
		return g1Add(input)
	case engine.OpG2Add:
		return g2Add(input)
	case engine.OpG1MSM:
		return g1MSM(input)
	case engine.OpG2MSM:
		return g2MSM(input)
	case engine.OpPairingCheck:
		return pairingCheck(input)
	case engine.OpMapFpToG1:
		return mapFpToG1(input)
	case engine.OpMapFp2ToG2:
		return mapFp2ToG2(input)
	default:
		return nil, fmt.Errorf("gnark: unknown operation %s", op)
	}
}

// decodeFp reads a 64-byte padded field element. The 16 pad bytes must be
// zero and the value must be canonical (below the modulus).
func decodeFp(in []byte) (fp.Element, error) {
	if len(in) != curve.FpSize {
		return fp.Element{}, errInvalidInputLength
	}
	for i := 0; i < 16; i++ {
		if in[i] != 0 {
			return fp.Element{}, errInvalidFieldPad
		}
	}
	var raw [48]byte
	copy(raw[:], in[16:])
	v, err := fp.BigEndian.Element(&raw)
	if err != nil {
		return fp.Element{}, errInvalidField
	}
	return v, nil
}

// encodeFp writes a field element into a fresh 64-byte padded encoding.
func encodeFp(dst []byte, v *fp.Element) {
	raw := v.Bytes()
	copy(dst[16:curve.FpSize], raw[:])
}

// decodeG1 reads a 128-byte G1 point. All zeros is the point at infinity.
// On-curve is always verified for finite points; the subgroup check is only
// applied where the operation demands it (MSM and pairing inputs).
func decodeG1(in []byte, subgroup bool) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(in) != curve.G1Size {
		return p, errInvalidInputLength
	}
	x, err := decodeFp(in[:curve.FpSize])
	if err != nil {
		return p, err
	}
	y, err := decodeFp(in[curve.FpSize:])
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil
	}
	if !p.IsOnCurve() {
		return p, errNotOnCurve
	}
	if subgroup && !p.IsInSubGroup() {
		return p, errNotInSubgroup
	}
	return p, nil
}

// encodeG1 writes a G1 point as 128 bytes. Infinity encodes as all zeros.
func encodeG1(p *bls12381.G1Affine) []byte {
	out := make([]byte, curve.G1Size)
	if p.X.IsZero() && p.Y.IsZero() {
		return out
	}
	encodeFp(out[:curve.FpSize], &p.X)
	encodeFp(out[curve.FpSize:], &p.Y)
	return out
}

// decodeFp2 reads a 128-byte extension field element, c0 then c1.
func decodeFp2(in []byte) (bls12381.E2, error) {
	var e bls12381.E2
	if len(in) != curve.Fp2Size {
		return e, errInvalidInputLength
	}
	c0, err := decodeFp(in[:curve.FpSize])
	if err != nil {
		return e, err
	}
	c1, err := decodeFp(in[curve.FpSize:])
	if err != nil {
		return e, err
	}
	e.A0, e.A1 = c0, c1
	return e, nil
}

// decodeG2 reads a 256-byte G2 point, with the same validation split as
// decodeG1.
func decodeG2(in []byte, subgroup bool) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	if len(in) != curve.G2Size {
		return p, errInvalidInputLength
	}
	x, err := decodeFp2(in[:curve.Fp2Size])
	if err != nil {
		return p, err
	}
	y, err := decodeFp2(in[curve.Fp2Size:])
	if err != nil {
		return p, err
	}
	p.X, p.Y = x, y
	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil
	}
	if !p.IsOnCurve() {
		return p, errNotOnCurve
	}
	if subgroup && !p.IsInSubGroup() {
		return p, errNotInSubgroup
	}
	return p, nil
}

// encodeG2 writes a G2 point as 256 bytes. Infinity encodes as all zeros.
func encodeG2(p *bls12381.G2Affine) []byte {
	out := make([]byte, curve.G2Size)
	if p.X.IsZero() && p.Y.IsZero() {
		return out
	}
	encodeFp(out[:curve.FpSize], &p.X.A0)
	encodeFp(out[curve.FpSize:curve.Fp2Size], &p.X.A1)
	encodeFp(out[curve.Fp2Size:curve.Fp2Size+curve.FpSize], &p.Y.A0)
	encodeFp(out[curve.Fp2Size+curve.FpSize:], &p.Y.A1)
	return out
}

func g1Add(input []byte) ([]byte, error) {
	if len(input) != 2*curve.G1Size {
		return nil, errInvalidInputLength
	}
	p0, err := decodeG1(input[:curve.G1Size], false)
	if err != nil {
		return nil, err
	}
	p1, err := decodeG1(input[curve.G1Size:], false)
	if err != nil {
		return nil, err
	}
	p0.Add(&p0, &p1)
	return encodeG1(&p0), nil
}

func g2Add(input []byte) ([]byte, error) {
	if len(input) != 2*curve.G2Size {
		return nil, errInvalidInputLength
	}
	p0, err := decodeG2(input[:curve.G2Size], false)
	if err != nil {
		return nil, err
	}
	p1, err := decodeG2(input[curve.G2Size:], false)
	if err != nil {
		return nil, err
	}
	p0.Add(&p0, &p1)
	return encodeG2(&p0), nil
}

func g1MSM(input []byte) ([]byte, error) {
	pairSize := curve.G1Size + curve.ScalarSize
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, errInvalidInputLength
	}
	k := len(input) / pairSize
	points := make([]bls12381.G1Affine, k)
	scalars := make([]fr.Element, k)
	for i := 0; i < k; i++ {
		off := i * pairSize
		p, err := decodeG1(input[off:off+curve.G1Size], true)
		if err != nil {
			return nil, err
		}
		points[i] = p
		scalars[i].SetBytes(input[off+curve.G1Size : off+pairSize])
	}
	var r bls12381.G1Affine
	if _, err := r.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return encodeG1(&r), nil
}

func g2MSM(input []byte) ([]byte, error) {
	pairSize := curve.G2Size + curve.ScalarSize
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, errInvalidInputLength
	}
	k := len(input) / pairSize
	points := make([]bls12381.G2Affine, k)
	scalars := make([]fr.Element, k)
	for i := 0; i < k; i++ {
		off := i * pairSize
		p, err := decodeG2(input[off:off+curve.G2Size], true)
		if err != nil {
			return nil, err
		}
		points[i] = p
		scalars[i].SetBytes(input[off+curve.G2Size : off+pairSize])
	}
	var r bls12381.G2Affine
	if _, err := r.MultiExp(points, scalars, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return encodeG2(&r), nil
}

func pairingCheck(input []byte) ([]byte, error) {
	pairSize := curve.G1Size + curve.G2Size
	if len(input) == 0 || len(input)%pairSize != 0 {
		return nil, errInvalidInputLength
	}
	k := len(input) / pairSize
	g1s := make([]bls12381.G1Affine, k)
	g2s := make([]bls12381.G2Affine, k)
	for i := 0; i < k; i++ {
		off := i * pairSize
		p, err := decodeG1(input[off:off+curve.G1Size], true)
		if err != nil {
			return nil, err
		}
		q, err := decodeG2(input[off+curve.G1Size:off+pairSize], true)
		if err != nil {
			return nil, err
		}
		g1s[i], g2s[i] = p, q
	}
	// Pairs with a point at infinity contribute the identity and are
	// filtered inside the Miller loop.
	ok, err := bls12381.PairingCheck(g1s, g2s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 32)
	if ok {
		out[31] = 1
	}
	return out, nil
}

func mapFpToG1(input []byte) ([]byte, error) {
	u, err := decodeFp(input)
	if err != nil {
		return nil, err
	}
	r := bls12381.MapToG1(u)
	return encodeG1(&r), nil
}

func mapFp2ToG2(input []byte) ([]byte, error) {
	u, err := decodeFp2(input)
	if err != nil {
		return nil, err
	}
	r := bls12381.MapToG2(u)
	return encodeG2(&r), nil
}
