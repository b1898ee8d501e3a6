// Package mbqcirq compiles measurement-based quantum computation (MBQC)
// patterns into gate-level circuit programs with explicit classical control,
// executes them on an exact statevector simulator, and decodes raw execution
// histograms back into pattern-relative outcomes.
package mbqcirq
