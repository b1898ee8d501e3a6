package mbqcirq

import (
	"fmt"
	"math"
)

// CorrectionOrder selects where Z-domain feedforward corrections are emitted
// relative to the angle-dependent phase rotation of an XY-plane measurement.
// The two orderings are equivalent in exact arithmetic (the Z correction
// commutes with the phase rotation); both appear in deployed compilers, so
// the choice is explicit configuration rather than a hidden default.
type CorrectionOrder int

const (
	// CorrectionsBeforeRotation emits X then Z feedforward, then the phase
	// rotation and basis change.
	CorrectionsBeforeRotation CorrectionOrder = iota
	// CorrectionsAroundRotation emits X feedforward, the phase rotation,
	// then Z feedforward, then the basis change.
	CorrectionsAroundRotation
)

// PlaneSupport selects which measurement planes the compiler accepts.
type PlaneSupport int

const (
	// PlanesXYOnly rejects YZ- and XZ-plane measurements with
	// ErrUnsupportedPlane.
	PlanesXYOnly PlaneSupport = iota
	// PlanesAll compiles YZ- and XZ-plane measurements as RX and RY basis
	// rotations.
	PlanesAll
)

// Options configures a compilation. OptimizationLevel and LayoutMethod are
// opaque hints passed through to a downstream transpiler; the compiler never
// interprets them beyond range validation.
type Options struct {
	SaveStatevector   bool
	CorrectionOrder   CorrectionOrder
	PlaneSupport      PlaneSupport
	OptimizationLevel int
	LayoutMethod      string
}

// DefaultOptions returns the standard compile configuration.
func DefaultOptions() Options {
	return Options{
		OptimizationLevel: 3,
		LayoutMethod:      "trivial",
	}
}

func (o Options) validate() error {
	if o.OptimizationLevel < 0 || o.OptimizationLevel > 3 {
		return fmt.Errorf("%w: optimization level %d", ErrOptionType, o.OptimizationLevel)
	}
	switch o.CorrectionOrder {
	case CorrectionsBeforeRotation, CorrectionsAroundRotation:
	default:
		return fmt.Errorf("%w: correction order %d", ErrOptionType, o.CorrectionOrder)
	}
	switch o.PlaneSupport {
	case PlanesXYOnly, PlanesAll:
	default:
		return fmt.Errorf("%w: plane support %d", ErrOptionType, o.PlaneSupport)
	}
	return nil
}

// CompiledProgram bundles a compiled circuit with the node-to-register map
// needed to decode its execution results.
type CompiledProgram struct {
	Program     *Program
	RegisterMap map[int]int
	Pattern     *Pattern
}

// compiler holds the single-use state of one in-progress compilation: the
// free-qubit pool, the node-to-physical map and the node-to-register map.
// It is created fresh per Compile call and discarded afterwards.
type compiler struct {
	pat  *Pattern
	opts Options

	ops          []Op
	free         []int
	qubitOf      map[int]int
	registerOf   map[int]int
	nextRegister int
}

// Compile translates a pattern into a gate-level circuit program in a single
// left-to-right pass over the command stream. A failed compilation returns
// no partial program.
func Compile(pat *Pattern, opts Options) (*CompiledProgram, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c := &compiler{
		pat:        pat,
		opts:       opts,
		free:       make([]int, pat.MaxSpace),
		qubitOf:    make(map[int]int),
		registerOf: make(map[int]int),
	}
	for i := range c.free {
		c.free[i] = i
	}

	// Input nodes hold pre-existing qubits, prepared before the first command.
	for _, node := range pat.InputNodes {
		if _, err := c.allocate(node); err != nil {
			return nil, err
		}
	}

	for _, cmd := range pat.Commands {
		if err := c.dispatch(cmd); err != nil {
			return nil, err
		}
	}

	outputQubits, err := c.finalize()
	if err != nil {
		return nil, err
	}

	return &CompiledProgram{
		Program: &Program{
			NumQubits:    pat.MaxSpace,
			NumRegisters: pat.NNode + len(pat.OutputNodes),
			Ops:          c.ops,
			OutputQubits: outputQubits,
		},
		RegisterMap: c.registerOf,
		Pattern:     pat,
	}, nil
}

// allocate pops a physical index from the free pool, maps the node to it and
// prepares the qubit in the plus state.
func (c *compiler) allocate(node int) (int, error) {
	if len(c.free) == 0 {
		return 0, fmt.Errorf("%w: allocating node %d", ErrQubitPoolExhausted, node)
	}
	idx := c.free[0]
	c.free = c.free[1:]
	c.qubitOf[node] = idx
	c.ops = append(c.ops, ResetOp{Qubit: idx}, gate(GateH, idx))
	return idx, nil
}

// release returns the node's physical index to the free pool.
func (c *compiler) release(node int) {
	idx := c.qubitOf[node]
	delete(c.qubitOf, node)
	c.free = append(c.free, idx)
}

func (c *compiler) liveQubit(node int) (int, error) {
	idx, ok := c.qubitOf[node]
	if !ok {
		return 0, fmt.Errorf("%w: node %d is not allocated", ErrUnknownNode, node)
	}
	return idx, nil
}

// recordMeasurement assigns the next free classical register to a node.
func (c *compiler) recordMeasurement(node int) int {
	reg := c.nextRegister
	c.registerOf[node] = reg
	c.nextRegister++
	return reg
}

func (c *compiler) dispatch(cmd Command) error {
	switch cmd := cmd.(type) {
	case NewQubit:
		_, err := c.allocate(cmd.Node)
		return err
	case Entangle:
		a, err := c.liveQubit(cmd.A)
		if err != nil {
			return err
		}
		b, err := c.liveQubit(cmd.B)
		if err != nil {
			return err
		}
		c.ops = append(c.ops, CZOp{A: a, B: b})
		return nil
	case Measure:
		return c.measure(cmd)
	case CorrectX:
		idx, err := c.liveQubit(cmd.Node)
		if err != nil {
			return err
		}
		return c.applyCorrection(GateX, idx, cmd.Domain)
	case CorrectZ:
		idx, err := c.liveQubit(cmd.Node)
		if err != nil {
			return err
		}
		return c.applyCorrection(GateZ, idx, cmd.Domain)
	case ApplyClifford:
		idx, err := c.liveQubit(cmd.Node)
		if err != nil {
			return err
		}
		return c.emitClifford(cmd.Index, idx)
	default:
		return fmt.Errorf("unhandled command kind %T", cmd)
	}
}

// emitClifford appends the gate sequence for a Clifford-table entry.
// Identity gates carry no information and are skipped.
func (c *compiler) emitClifford(index, qubit int) error {
	seq, err := CliffordSequence(index)
	if err != nil {
		return err
	}
	for _, kind := range seq {
		if kind == GateI {
			continue
		}
		c.ops = append(c.ops, gate(kind, qubit))
	}
	return nil
}

// applyCorrection emits one correction gate per domain element, each
// independently conditioned. The gate is self-inverse, so per-element
// conditioning is equivalent to conditioning on the XOR parity of the whole
// domain; elements must never be collapsed into a single AND/OR condition.
func (c *compiler) applyCorrection(kind GateKind, qubit int, domain []int) error {
	for _, d := range domain {
		if reg, ok := c.registerOf[d]; ok {
			c.ops = append(c.ops, ConditionalOp{
				Cond: Condition{Register: reg, Value: 1},
				Body: []Op{gate(kind, qubit)},
			})
			continue
		}
		bit, ok := c.pat.Results[d]
		if !ok {
			return fmt.Errorf("%w: correction depends on node %d, which is neither measured nor deterministic", ErrUnknownNode, d)
		}
		if bit == 1 {
			c.ops = append(c.ops, gate(kind, qubit))
		}
	}
	return nil
}

func (c *compiler) measure(cmd Measure) error {
	idx, err := c.liveQubit(cmd.Node)
	if err != nil {
		return err
	}

	// Undo the local Clifford frame before measuring. Index 0 is the
	// identity frame and emits nothing.
	if cmd.Clifford != 0 {
		conj, err := CliffordConj(cmd.Clifford)
		if err != nil {
			return err
		}
		if err := c.emitClifford(conj, idx); err != nil {
			return err
		}
	}

	switch cmd.Plane {
	case PlaneXY:
		if err := c.measureXY(cmd, idx); err != nil {
			return err
		}
	case PlaneYZ, PlaneXZ:
		if c.opts.PlaneSupport != PlanesAll {
			return fmt.Errorf("%w: %s", ErrUnsupportedPlane, cmd.Plane)
		}
		if err := c.applyCorrection(GateX, idx, cmd.SDomain); err != nil {
			return err
		}
		if err := c.applyCorrection(GateZ, idx, cmd.TDomain); err != nil {
			return err
		}
		alpha := cmd.Angle * math.Pi
		if cmd.Plane == PlaneYZ {
			c.ops = append(c.ops, GateOp{Kind: GateRX, Qubit: idx, Angle: alpha})
		} else {
			c.ops = append(c.ops, GateOp{Kind: GateRY, Qubit: idx, Angle: alpha})
		}
	default:
		return fmt.Errorf("%w: plane %d", ErrUnsupportedPlane, cmd.Plane)
	}

	reg := c.recordMeasurement(cmd.Node)
	c.ops = append(c.ops, MeasureOp{Qubit: idx, Register: reg})
	c.release(cmd.Node)
	return nil
}

// measureXY rotates an XY-plane measurement basis onto the computational
// basis: a phase rotation by -Angle*pi followed by a Hadamard. The
// CorrectionOrder option decides whether the Z feedforward precedes or
// follows the phase rotation; it always precedes the Hadamard.
func (c *compiler) measureXY(cmd Measure, idx int) error {
	if err := c.applyCorrection(GateX, idx, cmd.SDomain); err != nil {
		return err
	}

	emitRotation := func() {
		if cmd.Angle != 0 {
			c.ops = append(c.ops, GateOp{Kind: GatePhase, Qubit: idx, Angle: -cmd.Angle * math.Pi})
		}
	}

	switch c.opts.CorrectionOrder {
	case CorrectionsBeforeRotation:
		if err := c.applyCorrection(GateZ, idx, cmd.TDomain); err != nil {
			return err
		}
		emitRotation()
	case CorrectionsAroundRotation:
		emitRotation()
		if err := c.applyCorrection(GateZ, idx, cmd.TDomain); err != nil {
			return err
		}
	}

	c.ops = append(c.ops, gate(GateH, idx))
	return nil
}

// finalize appends the output measurements, preceded by a state capture when
// requested. The returned output-qubit list is only populated together with
// the capture; it records the physical indices holding the output nodes at
// capture time.
func (c *compiler) finalize() ([]int, error) {
	var outputQubits []int
	if c.opts.SaveStatevector {
		for _, node := range c.pat.OutputNodes {
			idx, err := c.liveQubit(node)
			if err != nil {
				return nil, err
			}
			outputQubits = append(outputQubits, idx)
		}
		c.ops = append(c.ops, StateCaptureOp{})
	}

	for _, node := range c.pat.OutputNodes {
		idx, err := c.liveQubit(node)
		if err != nil {
			return nil, err
		}
		reg := c.recordMeasurement(node)
		c.ops = append(c.ops, MeasureOp{Qubit: idx, Register: reg})
	}
	return outputQubits, nil
}
