package mbqcirq

// Plane selects the measurement plane of a Measure command.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneYZ
	PlaneXZ
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "XY"
	case PlaneYZ:
		return "YZ"
	case PlaneXZ:
		return "XZ"
	}
	return "?"
}

// Command is one step of a measurement pattern. The set of implementations is
// closed: NewQubit, Entangle, Measure, CorrectX, CorrectZ and ApplyClifford.
// The compiler dispatches over these six kinds exhaustively.
type Command interface {
	isCommand()
}

// NewQubit prepares a fresh qubit for the given node in the plus state.
type NewQubit struct {
	Node int
}

// Entangle applies a CZ between the qubits assigned to nodes A and B.
// Both nodes must be live when the command is reached.
type Entangle struct {
	A, B int
}

// Measure measures a node and releases its physical qubit.
//
// Angle is in units of pi (the XY-plane measurement basis is rotated by
// -Angle*pi before the basis change). SDomain and TDomain are XOR-parity
// dependency sets of previously measured nodes driving the X and Z
// feedforward corrections. Clifford is a local Clifford frame index whose
// conjugate is undone before measuring; index 0 (identity) means no frame.
type Measure struct {
	Node     int
	Plane    Plane
	Angle    float64
	SDomain  []int
	TDomain  []int
	Clifford int
}

// CorrectX applies an X byproduct correction to a live node, conditioned
// independently on each outcome in Domain.
type CorrectX struct {
	Node   int
	Domain []int
}

// CorrectZ applies a Z byproduct correction to a live node, conditioned
// independently on each outcome in Domain.
type CorrectZ struct {
	Node   int
	Domain []int
}

// ApplyClifford applies the Clifford-table gate sequence for Index to a
// live node.
type ApplyClifford struct {
	Node  int
	Index int
}

func (NewQubit) isCommand()      {}
func (Entangle) isCommand()      {}
func (Measure) isCommand()       {}
func (CorrectX) isCommand()      {}
func (CorrectZ) isCommand()      {}
func (ApplyClifford) isCommand() {}

// Pattern is an ordered MBQC command sequence together with the bookkeeping
// the compiler needs: input and output node lists, the precomputed bound on
// simultaneously live qubits, the total node count, and outcomes already
// fixed at compile time for nodes that are never measured live.
//
// A Pattern is immutable input: the compiler reads it once, left to right.
type Pattern struct {
	Commands    []Command
	InputNodes  []int
	OutputNodes []int
	MaxSpace    int
	NNode       int
	Results     map[int]uint8
}
