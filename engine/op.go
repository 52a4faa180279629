// Package engine defines the boundary to the external BLS12-381
// curve-arithmetic engine: the closed set of seven operations with their
// fixed byte sizes, the Engine interface an arithmetic backend implements,
// and the Client that stages engine invocations through a scratch arena.
package engine

import (
	"fmt"

	"github.com/curvebind/bls12381/curve"
)

// Op identifies one of the seven fixed engine operations. The set is closed:
// every Op carries its exact input and output sizes, so dispatch code can
// switch exhaustively instead of reasoning about bare numeric identifiers.
type Op uint8

const (
	// OpG1Add adds two G1 points. No subgroup check.
	OpG1Add Op = iota
	// OpG2Add adds two G2 points. No subgroup check.
	OpG2Add
	// OpG1MSM computes a G1 multi-scalar multiplication. Subgroup-checks
	// every input point.
	OpG1MSM
	// OpG2MSM computes a G2 multi-scalar multiplication. Subgroup-checks
	// every input point.
	OpG2MSM
	// OpPairingCheck reports whether the product of pairings over the input
	// pairs is the target-group identity.
	OpPairingCheck
	// OpMapFpToG1 maps a base field element to a G1 subgroup point.
	OpMapFpToG1
	// OpMapFp2ToG2 maps an extension field element to a G2 subgroup point.
	OpMapFp2ToG2
)

// String returns the operation's wire-protocol name.
func (op Op) String() string {
	switch op {
	case OpG1Add:
		return "g1-add"
	case OpG2Add:
		return "g2-add"
	case OpG1MSM:
		return "g1-msm"
	case OpG2MSM:
		return "g2-msm"
	case OpPairingCheck:
		return "pairing-check"
	case OpMapFpToG1:
		return "map-fp-to-g1"
	case OpMapFp2ToG2:
		return "map-fp2-to-g2"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Batched reports whether the operation's input scales with an element count.
func (op Op) Batched() bool {
	switch op {
	case OpG1MSM, OpG2MSM, OpPairingCheck:
		return true
	default:
		return false
	}
}

// PairSize returns the per-element input size for batched operations and 0
// for fixed-input operations.
func (op Op) PairSize() int {
	switch op {
	case OpG1MSM:
		return curve.G1Size + curve.ScalarSize
	case OpG2MSM:
		return curve.G2Size + curve.ScalarSize
	case OpPairingCheck:
		return curve.G1Size + curve.G2Size
	default:
		return 0
	}
}

// InputSize returns the exact input size for the operation; m is the element
// count for batched operations and is ignored otherwise.
func (op Op) InputSize(m int) int {
	switch op {
	case OpG1Add:
		return 2 * curve.G1Size
	case OpG2Add:
		return 2 * curve.G2Size
	case OpG1MSM, OpG2MSM, OpPairingCheck:
		return m * op.PairSize()
	case OpMapFpToG1:
		return curve.FpSize
	case OpMapFp2ToG2:
		return curve.Fp2Size
	default:
		panic("engine: unknown operation " + op.String())
	}
}

// OutputSize returns the fixed output size for the operation. Every
// invocation must produce exactly this many bytes regardless of batch size.
func (op Op) OutputSize() int {
	switch op {
	case OpG1Add, OpG1MSM, OpMapFpToG1:
		return curve.G1Size
	case OpG2Add, OpG2MSM, OpMapFp2ToG2:
		return curve.G2Size
	case OpPairingCheck:
		return 32
	default:
		panic("engine: unknown operation " + op.String())
	}
}
