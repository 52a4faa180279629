package engine

import (
	"errors"
	"fmt"

	"github.com/curvebind/bls12381/arena"
	"github.com/curvebind/bls12381/log"
)

var (
	// ErrInvocation reports that the engine rejected the input: malformed
	// encoding, field element not below the modulus, point off-curve, or
	// point outside the required subgroup. Every operation is a pure
	// function of its input, so the failure is deterministic and is never
	// retried.
	ErrInvocation = errors.New("engine: invocation failed")
	// ErrOutputSize reports that the engine produced output of a size or
	// shape other than the operation's fixed contract. This is an integrity
	// violation: the call must abort rather than interpret truncated or
	// extended data.
	ErrOutputSize = errors.New("engine: unexpected output size")
)

// Engine is the external curve-arithmetic backend. Execute runs op over
// input and returns exactly OutputSize bytes on success. Implementations are
// pure functions of their input and must not retain the input slice.
type Engine interface {
	Execute(op Op, input []byte) ([]byte, error)
}

// Client invokes an Engine with inputs and outputs staged in a scratch
// arena. It enforces the two integrity rules of the invocation contract: a
// failed invocation aborts with nothing written, and a success must return
// the operation's exact output size.
type Client struct {
	eng Engine
	log *log.Logger
}

// NewClient wraps eng. A nil logger disables tracing.
func NewClient(eng Engine, l *log.Logger) *Client {
	if l == nil {
		l = log.Nop()
	}
	return &Client{eng: eng, log: l.Module("engine")}
}

// Invoke executes op over the in region of a and writes the result into the
// prefix of out. On any error nothing is written and the enclosing call must
// abort; partial output is never observable. out must have capacity for the
// operation's output; a shorter region is a layout bug and panics.
func (c *Client) Invoke(a *arena.Arena, op Op, in, out arena.Region) error {
	if out.Len() < op.OutputSize() {
		panic(fmt.Sprintf("engine: output region of %d bytes for %s, need %d", out.Len(), op, op.OutputSize()))
	}

	result, err := c.eng.Execute(op, a.Bytes(in))
	if err != nil {
		c.log.Debug("engine rejected input", "op", op.String(), "input_len", in.Len(), "err", err)
		return fmt.Errorf("%w: %s: %v", ErrInvocation, op, err)
	}
	if len(result) != op.OutputSize() {
		c.log.Error("engine output size mismatch", "op", op.String(), "got", len(result), "want", op.OutputSize())
		return fmt.Errorf("%w: %s returned %d bytes, want %d", ErrOutputSize, op, len(result), op.OutputSize())
	}
	if op == OpPairingCheck {
		if err := checkPairingShape(result); err != nil {
			c.log.Error("engine output malformed", "op", op.String(), "err", err)
			return err
		}
	}

	copy(a.Bytes(out)[:op.OutputSize()], result)
	a.Protect(out.Slice(0, op.OutputSize()))
	c.log.Debug("engine invocation complete", "op", op.String(), "input_len", in.Len(), "output_len", op.OutputSize())
	return nil
}

// checkPairingShape validates the 32-byte pairing result: 31 zero bytes
// followed by 0 or 1. The check is deliberate: the leading bytes are assumed
// zero by the protocol but an engine that violates the assumption must be
// caught, not silently reinterpreted.
func checkPairingShape(result []byte) error {
	for i := 0; i < 31; i++ {
		if result[i] != 0 {
			return fmt.Errorf("%w: pairing result has nonzero byte at %d", ErrOutputSize, i)
		}
	}
	if result[31] > 1 {
		return fmt.Errorf("%w: pairing result byte is %d, want 0 or 1", ErrOutputSize, result[31])
	}
	return nil
}
