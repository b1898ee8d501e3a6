package main

import "mbqcirq"

// demo is one built-in measurement pattern with a tunable angle (in units of
// pi).
type demo struct {
	name      string
	blurb     string
	allPlanes bool
	build     func(angle float64) *mbqcirq.Pattern
}

var demos = []demo{
	{
		name:  "coin",
		blurb: "One node measured at the given angle; 1/2 is an unbiased coin.",
		build: func(angle float64) *mbqcirq.Pattern {
			return &mbqcirq.Pattern{
				Commands: []mbqcirq.Command{
					mbqcirq.NewQubit{Node: 0},
					mbqcirq.Measure{Node: 0, Plane: mbqcirq.PlaneXY, Angle: angle},
				},
				MaxSpace: 1,
				NNode:    1,
			}
		},
	},
	{
		name:  "teleport",
		blurb: "One-bit teleportation: J(angle) applied to a plus-state input.",
		build: func(angle float64) *mbqcirq.Pattern {
			return &mbqcirq.Pattern{
				Commands: []mbqcirq.Command{
					mbqcirq.NewQubit{Node: 1},
					mbqcirq.Entangle{A: 0, B: 1},
					mbqcirq.Measure{Node: 0, Plane: mbqcirq.PlaneXY, Angle: angle},
					mbqcirq.CorrectX{Node: 1, Domain: []int{0}},
				},
				InputNodes:  []int{0},
				OutputNodes: []int{1},
				MaxSpace:    2,
				NNode:       2,
			}
		},
	},
	{
		name:  "chain",
		blurb: "Two chained J rotations on a reused two-qubit pool.",
		build: func(angle float64) *mbqcirq.Pattern {
			return &mbqcirq.Pattern{
				Commands: []mbqcirq.Command{
					mbqcirq.NewQubit{Node: 1},
					mbqcirq.Entangle{A: 0, B: 1},
					mbqcirq.Measure{Node: 0, Plane: mbqcirq.PlaneXY, Angle: angle},
					mbqcirq.NewQubit{Node: 2},
					mbqcirq.Entangle{A: 1, B: 2},
					mbqcirq.Measure{Node: 1, Plane: mbqcirq.PlaneXY, Angle: angle, SDomain: []int{0}},
					mbqcirq.CorrectX{Node: 2, Domain: []int{1}},
					mbqcirq.CorrectZ{Node: 2, Domain: []int{0}},
				},
				InputNodes:  []int{0},
				OutputNodes: []int{2},
				MaxSpace:    2,
				NNode:       3,
			}
		},
	},
	{
		name:  "clifford",
		blurb: "S frame on the measured node, undone before readout.",
		build: func(angle float64) *mbqcirq.Pattern {
			return &mbqcirq.Pattern{
				Commands: []mbqcirq.Command{
					mbqcirq.NewQubit{Node: 1},
					mbqcirq.Entangle{A: 0, B: 1},
					mbqcirq.Measure{Node: 0, Plane: mbqcirq.PlaneXY, Angle: angle, Clifford: 4},
					mbqcirq.CorrectX{Node: 1, Domain: []int{0}},
				},
				InputNodes:  []int{0},
				OutputNodes: []int{1},
				MaxSpace:    2,
				NNode:       2,
			}
		},
	},
	{
		name:      "yz-plane",
		blurb:     "YZ-plane measurement, compiled as an RX basis rotation.",
		allPlanes: true,
		build: func(angle float64) *mbqcirq.Pattern {
			return &mbqcirq.Pattern{
				Commands: []mbqcirq.Command{
					mbqcirq.NewQubit{Node: 0},
					mbqcirq.Measure{Node: 0, Plane: mbqcirq.PlaneYZ, Angle: angle},
				},
				MaxSpace: 1,
				NNode:    1,
			}
		},
	},
}
