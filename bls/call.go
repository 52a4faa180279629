// Package bls is the typed entry point of the call-layout engine. A Call
// stages typed points and scalars into a scratch arena in the flat wire
// encoding, invokes the external curve-arithmetic engine through
// engine.Client, and hands results back as zero-copy views over the arena.
//
// A Call models one synchronous top-level invocation: it owns a fresh arena,
// runs single-threaded, and everything it allocates lives until the Call
// goes out of scope. Views returned from its methods alias the Call's arena
// and must not outlive it.
package bls

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/curvebind/bls12381/arena"
	"github.com/curvebind/bls12381/curve"
	"github.com/curvebind/bls12381/engine"
	"github.com/curvebind/bls12381/log"
)

var (
	// ErrLengthMismatch reports parallel point and scalar slices of
	// different lengths handed to a batched operation. Detected before any
	// engine invocation.
	ErrLengthMismatch = errors.New("bls: point and scalar counts differ")
	// ErrEmptyInput reports a batched operation with zero elements. The
	// engine requires at least one element and a zero-element batch has no
	// defined result, so it is rejected before invocation.
	ErrEmptyInput = errors.New("bls: batched operation with no elements")
)

// defaultArenaCapacity covers a handful of pairing pairs without growth.
const defaultArenaCapacity = 2048

// Constant accessors, re-exported from curve so call sites need only this
// package. Pure values; no engine invocation.
var (
	G1Generator    = curve.G1Generator
	G1NegGenerator = curve.G1NegGenerator
	G1Infinity     = curve.G1Infinity
	G2Generator    = curve.G2Generator
	G2NegGenerator = curve.G2NegGenerator
	G2Infinity     = curve.G2Infinity
)

// Call is a single-call context: one arena, one engine client. Not safe for
// concurrent use; concurrent logical calls each get their own Call.
type Call struct {
	a      *arena.Arena
	client *engine.Client
	log    *log.Logger
}

// Option configures a Call.
type Option func(*options)

type options struct {
	capacity int
	logger   *log.Logger
}

// WithArenaCapacity sets the arena's initial capacity hint in bytes.
func WithArenaCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger attaches a structured logger for operation tracing.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewCall creates a call context over eng with a fresh arena.
func NewCall(eng engine.Engine, opts ...Option) *Call {
	o := options{capacity: defaultArenaCapacity, logger: nil}
	for _, apply := range opts {
		apply(&o)
	}
	l := o.logger
	if l == nil {
		l = log.Nop()
	}
	return &Call{
		a:      arena.New(o.capacity),
		client: engine.NewClient(eng, l),
		log:    l.Module("bls"),
	}
}

// Arena exposes the call's arena, primarily so callers can inspect the
// frontier or build their own views over returned regions.
func (c *Call) Arena() *arena.Arena { return c.a }

// stage allocates one buffer sized for the larger of the operation's input
// and output, so the engine can overwrite the input region in place, and
// returns the buffer with its input and output prefixes.
func (c *Call) stage(op engine.Op, m int) (buf, in, out arena.Region) {
	inSize, outSize := op.InputSize(m), op.OutputSize()
	size := inSize
	if outSize > size {
		size = outSize
	}
	buf = c.a.Alloc(size)
	return buf, buf.Slice(0, inSize), buf.Slice(0, outSize)
}

// G1Add computes p + q. No subgroup check is performed by the engine.
func (c *Call) G1Add(p, q curve.G1Point) (curve.G1View, error) {
	_, in, out := c.stage(engine.OpG1Add, 0)
	buf := c.a.Bytes(in)
	curve.PutG1(buf[:curve.G1Size], p)
	curve.PutG1(buf[curve.G1Size:], q)
	if err := c.client.Invoke(c.a, engine.OpG1Add, in, out); err != nil {
		return curve.G1View{}, err
	}
	return curve.ViewG1(c.a, out), nil
}

// G2Add computes p + q in G2.
func (c *Call) G2Add(p, q curve.G2Point) (curve.G2View, error) {
	_, in, out := c.stage(engine.OpG2Add, 0)
	buf := c.a.Bytes(in)
	curve.PutG2(buf[:curve.G2Size], p)
	curve.PutG2(buf[curve.G2Size:], q)
	if err := c.client.Invoke(c.a, engine.OpG2Add, in, out); err != nil {
		return curve.G2View{}, err
	}
	return curve.ViewG2(c.a, out), nil
}

// G1MultiScalarMul computes the sum of scalars[i]·points[i] as one atomic
// engine invocation. Every input point is subgroup-checked by the engine.
// The result is independent of pair order, but pairs are encoded in input
// order as the protocol requires.
func (c *Call) G1MultiScalarMul(points []curve.G1Point, scalars []*uint256.Int) (curve.G1View, error) {
	if err := checkBatch(len(points), len(scalars)); err != nil {
		return curve.G1View{}, err
	}
	m := len(points)
	_, in, out := c.stage(engine.OpG1MSM, m)
	buf := c.a.Bytes(in)
	pair := engine.OpG1MSM.PairSize()
	for i := range points {
		off := i * pair
		curve.PutG1(buf[off:off+curve.G1Size], points[i])
		curve.PutScalar(buf[off+curve.G1Size:off+pair], scalars[i])
	}
	c.log.Debug("staged g1 msm", "pairs", m, "bytes", in.Len())
	if err := c.client.Invoke(c.a, engine.OpG1MSM, in, out); err != nil {
		return curve.G1View{}, err
	}
	return curve.ViewG1(c.a, out), nil
}

// G2MultiScalarMul is the G2 analogue of G1MultiScalarMul.
func (c *Call) G2MultiScalarMul(points []curve.G2Point, scalars []*uint256.Int) (curve.G2View, error) {
	if err := checkBatch(len(points), len(scalars)); err != nil {
		return curve.G2View{}, err
	}
	m := len(points)
	_, in, out := c.stage(engine.OpG2MSM, m)
	buf := c.a.Bytes(in)
	pair := engine.OpG2MSM.PairSize()
	for i := range points {
		off := i * pair
		curve.PutG2(buf[off:off+curve.G2Size], points[i])
		curve.PutScalar(buf[off+curve.G2Size:off+pair], scalars[i])
	}
	c.log.Debug("staged g2 msm", "pairs", m, "bytes", in.Len())
	if err := c.client.Invoke(c.a, engine.OpG2MSM, in, out); err != nil {
		return curve.G2View{}, err
	}
	return curve.ViewG2(c.a, out), nil
}

// PairingCheck reports whether the product of pairings e(as[i], bs[i]) is
// the target-group identity. All points are subgroup-checked by the engine.
func (c *Call) PairingCheck(as []curve.G1Point, bs []curve.G2Point) (bool, error) {
	if err := checkBatch(len(as), len(bs)); err != nil {
		return false, err
	}
	m := len(as)
	_, in, out := c.stage(engine.OpPairingCheck, m)
	buf := c.a.Bytes(in)
	pair := engine.OpPairingCheck.PairSize()
	for i := range as {
		off := i * pair
		curve.PutG1(buf[off:off+curve.G1Size], as[i])
		curve.PutG2(buf[off+curve.G1Size:off+pair], bs[i])
	}
	c.log.Debug("staged pairing check", "pairs", m, "bytes", in.Len())
	if err := c.client.Invoke(c.a, engine.OpPairingCheck, in, out); err != nil {
		return false, err
	}
	result := c.a.Bytes(out)
	return result[len(result)-1] == 1, nil
}

// MapFpToG1 deterministically maps a base field element to a G1 subgroup
// point. The staging buffer is sized for the output, since the engine
// overwrites the input region in place.
func (c *Call) MapFpToG1(u *big.Int) (curve.G1View, error) {
	_, in, out := c.stage(engine.OpMapFpToG1, 0)
	curve.PutFp(c.a.Bytes(in), u)
	if err := c.client.Invoke(c.a, engine.OpMapFpToG1, in, out); err != nil {
		return curve.G1View{}, err
	}
	return curve.ViewG1(c.a, out), nil
}

// MapFp2ToG2 maps an extension field element to a G2 subgroup point.
func (c *Call) MapFp2ToG2(u curve.Fp2) (curve.G2View, error) {
	_, in, out := c.stage(engine.OpMapFp2ToG2, 0)
	curve.PutFp2(c.a.Bytes(in), u)
	if err := c.client.Invoke(c.a, engine.OpMapFp2ToG2, in, out); err != nil {
		return curve.G2View{}, err
	}
	return curve.ViewG2(c.a, out), nil
}

// checkBatch validates the parallel-slice contract shared by the batched
// operations. It never reaches the engine.
func checkBatch(points, scalars int) error {
	if points != scalars {
		return ErrLengthMismatch
	}
	if points == 0 {
		return ErrEmptyInput
	}
	return nil
}
