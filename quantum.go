package mbqcirq

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
)

type Complex = complex128

// StateVector is a dense amplitude vector over NumQubits qubits. Qubit q
// corresponds to bit q of the basis-state index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the all-zeros computational basis state.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// ApplyGate applies a single-qubit gate kind to the target qubit. The angle
// is only read for GatePhase, GateRX and GateRY.
func (s *StateVector) ApplyGate(kind GateKind, target int, angle float64) {
	switch kind {
	case GateI:
	case GateX:
		s.applyX(target)
	case GateY:
		s.applyY(target)
	case GateZ:
		s.applyZ(target)
	case GateS:
		s.applyS(target, false)
	case GateSdg:
		s.applyS(target, true)
	case GateH:
		s.applyH(target)
	case GatePhase:
		s.applyPhase(target, angle)
	case GateRX:
		s.applyRX(target, angle)
	case GateRY:
		s.applyRY(target, angle)
	}
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := 1i
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

// applyPhase multiplies the |1> branch by e^(i*theta).
func (s *StateVector) applyPhase(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := cmplx.Exp(complex(0, theta))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - s_*s.Amplitudes[j]
			newAmps[j] = s_*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyCZ(a, b int) {
	n := len(s.Amplitudes)
	aBit := 1 << a
	bBit := 1 << b
	for i := 0; i < n; i++ {
		if i&aBit != 0 && i&bBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyReset(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q

	prob0 := 0.0
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			prob0 += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}

	if prob0 < 1e-15 {
		// The qubit is (numerically) |1>: flip it into |0> instead of
		// renormalizing a zero branch.
		s.applyX(q)
		return
	}

	norm := math.Sqrt(prob0)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			s.Amplitudes[i] = s.Amplitudes[i] / complex(norm, 0)
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// probOne returns the probability of measuring |1> on qubit q.
func (s *StateVector) probOne(q int) float64 {
	n := len(s.Amplitudes)
	bit := 1 << q
	p := 0.0
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			p += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}
	return p
}

// collapse projects qubit q onto the given outcome and renormalizes.
func (s *StateVector) collapse(q int, outcome uint8) {
	n := len(s.Amplitudes)
	bit := 1 << q
	keep := bit
	if outcome == 0 {
		keep = 0
	}

	norm := 0.0
	for i := 0; i < n; i++ {
		if i&bit == keep {
			norm += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}
	norm = math.Sqrt(norm)
	for i := 0; i < n; i++ {
		if i&bit == keep {
			s.Amplitudes[i] /= complex(norm, 0)
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// GetQubitProbabilities returns the marginal outcome probabilities per qubit.
func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// ExtractQubits returns the state of the given qubits, in list order (bit i
// of the extracted index corresponds to qubits[i]). The remaining qubits
// must be in a product state with the extracted ones, as they are after
// mid-circuit measurement collapse; otherwise an error is returned.
func (s *StateVector) ExtractQubits(qubits []int) (*StateVector, error) {
	mask := 0
	for _, q := range qubits {
		mask |= 1 << q
	}

	// Fix the rest-bit configuration from the highest-probability amplitude.
	best := 0
	bestProb := -1.0
	for i, amp := range s.Amplitudes {
		prob := real(amp * cmplx.Conj(amp))
		if prob > bestProb {
			bestProb = prob
			best = i
		}
	}
	restBits := best &^ mask

	sub := make([]Complex, 1<<len(qubits))
	norm := 0.0
	for m := range sub {
		full := restBits
		for i, q := range qubits {
			if m&(1<<i) != 0 {
				full |= 1 << q
			}
		}
		sub[m] = s.Amplitudes[full]
		norm += real(sub[m] * cmplx.Conj(sub[m]))
	}

	// In a product state the fixed rest configuration carries all the weight.
	if math.Abs(norm-1) > 1e-9 {
		return nil, fmt.Errorf("qubits %v are entangled with the rest of the register (norm %g)", qubits, norm)
	}

	return &StateVector{Amplitudes: sub, NumQubits: len(qubits)}, nil
}

// Fidelity returns |<s|other>|^2, which is 1 for equal states up to global
// phase.
func (s *StateVector) Fidelity(other *StateVector) float64 {
	if len(s.Amplitudes) != len(other.Amplitudes) {
		return 0
	}
	var inner Complex
	for i := range s.Amplitudes {
		inner += cmplx.Conj(s.Amplitudes[i]) * other.Amplitudes[i]
	}
	return real(inner * cmplx.Conj(inner))
}

// Simulator executes compiled programs exactly, lowering ConditionalOp
// against a per-shot classical register file and sampling measurements with
// a seeded source. It is the local stand-in for an execution backend.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator returns a simulator with a deterministic seeded source.
func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// RunResult is a raw execution histogram. Keys follow the register
// bit-ordering convention of FormatResult.
type RunResult struct {
	Counts map[string]int
	Shots  int
}

// Run executes the program for the given number of shots and returns the raw
// histogram.
func (sim *Simulator) Run(p *Program, shots int) (*RunResult, error) {
	return sim.RunContext(context.Background(), p, shots)
}

// RunContext is Run with cooperative cancellation between shots.
func (sim *Simulator) RunContext(ctx context.Context, p *Program, shots int) (*RunResult, error) {
	counts := make(map[string]int)
	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		regs, _, err := sim.runShot(p)
		if err != nil {
			return nil, err
		}
		counts[registerKey(regs)]++
	}
	return &RunResult{Counts: counts, Shots: shots}, nil
}

// RunStatevector executes a single shot and returns the state recorded by
// the program's StateCaptureOp (or the final state when the program has
// none) together with the classical register file.
func (sim *Simulator) RunStatevector(p *Program) (*StateVector, []uint8, error) {
	regs, captured, err := sim.runShot(p)
	return captured, regs, err
}

func (sim *Simulator) runShot(p *Program) ([]uint8, *StateVector, error) {
	state := NewStateVector(max(p.NumQubits, 1))
	regs := make([]uint8, p.NumRegisters)
	var captured *StateVector

	if err := sim.applyOps(state, regs, p.Ops, &captured); err != nil {
		return nil, nil, err
	}
	if captured == nil {
		captured = state
	}
	return regs, captured, nil
}

func (sim *Simulator) applyOps(state *StateVector, regs []uint8, ops []Op, captured **StateVector) error {
	for _, op := range ops {
		switch op := op.(type) {
		case GateOp:
			state.ApplyGate(op.Kind, op.Qubit, op.Angle)
		case CZOp:
			state.applyCZ(op.A, op.B)
		case ResetOp:
			state.applyReset(op.Qubit)
		case MeasureOp:
			if op.Register < 0 || op.Register >= len(regs) {
				return fmt.Errorf("measurement into register %d, register file size %d", op.Register, len(regs))
			}
			var outcome uint8
			if sim.rng.Float64() < state.probOne(op.Qubit) {
				outcome = 1
			}
			state.collapse(op.Qubit, outcome)
			regs[op.Register] = outcome
		case ConditionalOp:
			if op.Cond.Register < 0 || op.Cond.Register >= len(regs) {
				return fmt.Errorf("condition on register %d, register file size %d", op.Cond.Register, len(regs))
			}
			if regs[op.Cond.Register] == op.Cond.Value {
				if err := sim.applyOps(state, regs, op.Body, captured); err != nil {
					return err
				}
			}
		case StateCaptureOp:
			*captured = state.Clone()
		default:
			return fmt.Errorf("unhandled op kind %T", op)
		}
	}
	return nil
}

// registerKey renders a register file as a histogram key: the bit of
// register r sits at string index len(regs)-1-r.
func registerKey(regs []uint8) string {
	n := len(regs)
	key := make([]byte, n)
	for r, bit := range regs {
		key[n-1-r] = '0' + bit
	}
	return string(key)
}
