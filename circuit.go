package mbqcirq

import (
	"fmt"
	"strings"
)

// GateKind enumerates the elementary single-qubit gates the compiler emits.
// GatePhase, GateRX and GateRY carry an angle in radians; the rest are fixed.
type GateKind int

const (
	GateI GateKind = iota
	GateX
	GateY
	GateZ
	GateS
	GateSdg
	GateH
	GatePhase
	GateRX
	GateRY
)

func (k GateKind) String() string {
	switch k {
	case GateI:
		return "I"
	case GateX:
		return "X"
	case GateY:
		return "Y"
	case GateZ:
		return "Z"
	case GateS:
		return "S"
	case GateSdg:
		return "SDG"
	case GateH:
		return "H"
	case GatePhase:
		return "P"
	case GateRX:
		return "RX"
	case GateRY:
		return "RY"
	}
	return "?"
}

// qasmName returns the OPENQASM 2.0 spelling of the gate.
func (k GateKind) qasmName() string {
	switch k {
	case GateI:
		return "id"
	case GatePhase:
		return "p"
	default:
		return strings.ToLower(k.String())
	}
}

// Op is a single operation of a compiled circuit program. The set of
// implementations is closed: GateOp, CZOp, ResetOp, MeasureOp, ConditionalOp
// and StateCaptureOp.
type Op interface {
	isOp()
}

// GateOp applies a single-qubit gate. Angle is in radians and only read for
// the angle-carrying kinds.
type GateOp struct {
	Kind  GateKind
	Qubit int
	Angle float64
}

// CZOp applies a two-qubit phase-entangling gate.
type CZOp struct {
	A, B int
}

// ResetOp returns a physical qubit to |0>.
type ResetOp struct {
	Qubit int
}

// MeasureOp measures a qubit in the computational basis into a classical
// register.
type MeasureOp struct {
	Qubit    int
	Register int
}

// Condition is a classical predicate on a single register bit.
type Condition struct {
	Register int
	Value    uint8
}

// ConditionalOp runs Body only when Cond holds. It is a first-class IR value
// so that any downstream renderer (simulator, QASM export, hardware lowering)
// can interpret classical control uniformly.
type ConditionalOp struct {
	Cond Condition
	Body []Op
}

// StateCaptureOp records the full statevector non-destructively. It is only
// emitted when state capture is requested and carries no operands.
type StateCaptureOp struct{}

func (GateOp) isOp()         {}
func (CZOp) isOp()           {}
func (ResetOp) isOp()        {}
func (MeasureOp) isOp()      {}
func (ConditionalOp) isOp()  {}
func (StateCaptureOp) isOp() {}

// gate builds the Op for an elementary fixed gate on a qubit.
func gate(kind GateKind, qubit int) Op {
	return GateOp{Kind: kind, Qubit: qubit}
}

// Program is a compiled gate-level circuit: register sizes, the ordered
// operation list, and (only when state capture was requested) the physical
// indices holding the output nodes at capture time.
type Program struct {
	NumQubits    int
	NumRegisters int
	Ops          []Op
	OutputQubits []int
}

// ToQASM renders the program as OPENQASM 2.0 text. State captures have no
// QASM equivalent and are emitted as comments.
func (p *Program) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(p.NumQubits, 1))
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(p.NumRegisters, 1))

	for _, op := range p.Ops {
		writeOpQASM(&sb, op, "")
	}
	return sb.String()
}

func writeOpQASM(sb *strings.Builder, op Op, cond string) {
	switch op := op.(type) {
	case GateOp:
		switch op.Kind {
		case GatePhase, GateRX, GateRY:
			fmt.Fprintf(sb, "%s%s(%s) q[%d];\n", cond, op.Kind.qasmName(), formatParam(op.Angle), op.Qubit)
		default:
			fmt.Fprintf(sb, "%s%s q[%d];\n", cond, op.Kind.qasmName(), op.Qubit)
		}
	case CZOp:
		fmt.Fprintf(sb, "%scz q[%d], q[%d];\n", cond, op.A, op.B)
	case ResetOp:
		fmt.Fprintf(sb, "%sreset q[%d];\n", cond, op.Qubit)
	case MeasureOp:
		fmt.Fprintf(sb, "%smeasure q[%d] -> c[%d];\n", cond, op.Qubit, op.Register)
	case ConditionalOp:
		prefix := fmt.Sprintf("if (c[%d]==%d) ", op.Cond.Register, op.Cond.Value)
		for _, inner := range op.Body {
			writeOpQASM(sb, inner, prefix)
		}
	case StateCaptureOp:
		sb.WriteString("// save_statevector\n")
	}
}
