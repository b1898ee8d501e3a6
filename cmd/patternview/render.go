package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mbqcirq"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateLabel returns a short display name for a gate op.
func gateLabel(op mbqcirq.GateOp) string {
	return op.Kind.String()
}

// ──────────────────────────── Cell grid ────────────────────────────

// cellInfo describes what one (qubit, step) cell of the grid shows.
type cellInfo struct {
	label     string // boxed gate name, "" when the wire is bare
	dot       bool   // endpoint of an entangling gate
	vert      bool   // vertical connector passes through
	vertAbove bool
	vertBelow bool
	capture   bool   // statevector capture barrier
	cond      string // classical annotation below the cell
	measure   bool
}

// buildGrid projects the laid-out ops onto a qubit-by-step cell matrix.
func buildGrid(layout []mbqcirq.OpLayout, steps, numQubits int) [][]cellInfo {
	cells := make([][]cellInfo, numQubits)
	for q := range cells {
		cells[q] = make([]cellInfo, steps)
	}

	place := func(q, step int, f func(c *cellInfo)) {
		if q >= 0 && q < numQubits && step >= 0 && step < steps {
			f(&cells[q][step])
		}
	}

	for _, ol := range layout {
		switch op := ol.Op.(type) {
		case mbqcirq.GateOp:
			place(op.Qubit, ol.Step, func(c *cellInfo) { c.label = gateLabel(op) })
		case mbqcirq.ResetOp:
			place(op.Qubit, ol.Step, func(c *cellInfo) { c.label = "R" })
		case mbqcirq.MeasureOp:
			place(op.Qubit, ol.Step, func(c *cellInfo) {
				c.label = "M"
				c.measure = true
				c.cond = fmt.Sprintf("c%d", op.Register)
			})
		case mbqcirq.CZOp:
			lo, hi := op.A, op.B
			if lo > hi {
				lo, hi = hi, lo
			}
			place(lo, ol.Step, func(c *cellInfo) { c.dot = true; c.vertBelow = true })
			place(hi, ol.Step, func(c *cellInfo) { c.dot = true; c.vertAbove = true })
			for q := lo + 1; q < hi; q++ {
				place(q, ol.Step, func(c *cellInfo) { c.vert = true })
			}
		case mbqcirq.ConditionalOp:
			cond := fmt.Sprintf("?c%d", op.Cond.Register)
			for _, inner := range op.Body {
				g, ok := inner.(mbqcirq.GateOp)
				if !ok {
					continue
				}
				place(g.Qubit, ol.Step, func(c *cellInfo) {
					c.label = gateLabel(g)
					c.cond = cond
				})
			}
		case mbqcirq.StateCaptureOp:
			for q := 0; q < numQubits; q++ {
				place(q, ol.Step, func(c *cellInfo) { c.capture = true })
			}
		}
	}
	return cells
}

// renderCell returns 3 lines (top, mid, bot) for a single cell, each exactly
// cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.capture:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.dot:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.vert:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.label != "":
		boxW := gateNameW + 2
		margin := (cellW - boxW) / 2
		rightMargin := cellW - margin - boxW
		name := padCenter(info.label, gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		if info.cond != "" {
			bot = condStyle.Render(padCenter(info.cond, cellW))
		}

	default:
		top = emptyRow
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
	}
	return
}

// ──────────────────────────── Panels ────────────────────────────

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	mainWidth := m.width - sideWidth - 4
	controlsHeight := 5
	panelHeight := max(m.height-controlsHeight-2, 6)

	var mainPanel string
	if m.showQASM {
		mainPanel = m.renderQASMPanel(mainWidth, panelHeight)
	} else {
		mainPanel = m.renderCircuitPanel(mainWidth, panelHeight)
	}
	sidePanel := m.renderSidePanel(sideWidth, panelHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, mainPanel, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)
}

// renderCircuitPanel renders the compiled circuit grid.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Compiled Circuit"))
	sb.WriteString("\n\n")

	if m.compileErr != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("compile error: %v", m.compileErr)))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	numQubits := m.compiled.Program.NumQubits
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)
	displaySteps := min(m.steps, maxSteps)

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := 0; step < displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	cells := buildGrid(m.layout, m.steps, numQubits)

	for qubit := 0; qubit < numQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := 0; step < displaySteps; step++ {
			top, mid, bot := renderCell(cells[qubit][step])
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Classical wire with measurement landing points.
	label := fmt.Sprintf("c%d", m.compiled.Program.NumRegisters)
	cbitLine := condStyle.Render(fmt.Sprintf("%-5s", label)) + dimStyle.Render("══")
	for step := 0; step < displaySteps; step++ {
		reg := -1
		for q := 0; q < numQubits; q++ {
			if cells[q][step].measure {
				regLabel := strings.TrimPrefix(cells[q][step].cond, "c")
				fmt.Sscanf(regLabel, "%d", &reg)
			}
		}
		if reg >= 0 {
			bitLabel := fmt.Sprintf("%d", reg)
			dashL := (cellW - 1) / 2
			dashR := max(cellW-dashL-1-len(bitLabel), 0)
			cbitLine += dimStyle.Render(strings.Repeat("═", dashL)) +
				condStyle.Render("╩"+bitLabel) +
				dimStyle.Render(strings.Repeat("═", dashR))
		} else {
			cbitLine += dimStyle.Render(strings.Repeat("═", cellW))
		}
	}
	sb.WriteString(cbitLine + "\n")

	if m.steps > displaySteps {
		fmt.Fprintf(&sb, "\n%s", dimStyle.Render(fmt.Sprintf("  … %d more steps (widen the terminal)", m.steps-displaySteps)))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the exported OPENQASM text.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("OPENQASM 2.0"))
	sb.WriteString("\n\n")

	if m.compileErr != nil {
		sb.WriteString(errStyle.Render(fmt.Sprintf("compile error: %v", m.compileErr)))
	} else {
		sb.WriteString(m.compiled.Program.ToQASM())
	}
	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderSidePanel renders the pattern list, options and run results.
func (m Model) renderSidePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Patterns"))
	sb.WriteString("\n\n")
	for i, d := range demos {
		if i == m.demoIdx {
			sb.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", d.name)))
		} else {
			fmt.Fprintf(&sb, "  %s", d.name)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(demos[m.demoIdx].blurb))
	sb.WriteString("\n\n")

	orderName := "before rotation"
	if m.order == mbqcirq.CorrectionsAroundRotation {
		orderName = "around rotation"
	}
	fmt.Fprintf(&sb, "Angle: %g·pi   Shots: %d\n", m.angle, m.shots)
	fmt.Fprintf(&sb, "Z feedforward: %s\n", orderName)

	if m.focus == focusAngle {
		sb.WriteString("\n")
		sb.WriteString(m.angleInput.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	switch {
	case m.running:
		fmt.Fprintf(&sb, "%s running %d shots…", m.spin.View(), m.shots)
	case m.runErr != nil:
		sb.WriteString(errStyle.Render(fmt.Sprintf("run failed: %v", m.runErr)))
	case m.counts != nil:
		mode := "decoded"
		if m.raw {
			mode = "raw"
		}
		sb.WriteString(titleStyle.Render(fmt.Sprintf("Results (%s)", mode)))
		sb.WriteString("\n")
		sb.WriteString(renderHistogram(m.counts, width-6))
	}

	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render(m.statusMsg))
	}

	return sideStyle.Width(width).Height(height).Render(sb.String())
}

// renderHistogram renders sorted count bars, widest bar scaled to fit.
func renderHistogram(counts map[string]int, width int) string {
	keys := make([]string, 0, len(counts))
	maxCount := 0
	for k, c := range counts {
		keys = append(keys, k)
		if c > maxCount {
			maxCount = c
		}
	}
	sort.Strings(keys)

	keyW := 0
	for _, k := range keys {
		if len(k) > keyW {
			keyW = len(k)
		}
	}
	barW := max(width-keyW-8, 4)

	var sb strings.Builder
	for _, k := range keys {
		c := counts[k]
		n := 0
		if maxCount > 0 {
			n = c * barW / maxCount
		}
		fmt.Fprintf(&sb, "%-*s %s %d\n", keyW, k, barStyle.Render(strings.Repeat("█", n)), c)
	}
	return sb.String()
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(keyStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Pattern  a Angle  o Z-order  +/- Shots\n")
	sb.WriteString(keyStyle.Render("Actions:  "))
	sb.WriteString("r Run  x Cancel  t Raw/decoded  v QASM  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
