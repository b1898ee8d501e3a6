package main

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mbqcirq"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusDemos focus = iota
	focusAngle
)

type tickMsg time.Time

// Model represents the TUI application state.
type Model struct {
	demoIdx int
	angle   float64 // in units of pi
	order   mbqcirq.CorrectionOrder
	shots   int

	compiled   *mbqcirq.CompiledProgram
	layout     []mbqcirq.OpLayout
	steps      int
	compileErr error

	exec    *mbqcirq.LocalExecutor
	job     *mbqcirq.Job
	running bool
	raw     bool
	counts  map[string]int
	runErr  error

	angleInput textinput.Model
	spin       spinner.Model
	focus      focus
	showQASM   bool
	statusMsg  string

	width  int
	height int
}

func initialModel() Model {
	ti := textinput.New()
	ti.Placeholder = "angle (units of pi, e.g. 0.25 or pi/4)"
	ti.CharLimit = 24
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		angle:      0.25,
		shots:      1024,
		angleInput: ti,
		spin:       sp,
		exec:       mbqcirq.NewLocalExecutor(time.Now().UnixNano(), slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	m.recompile()
	return m
}

// recompile rebuilds the selected demo pattern into a circuit and lays it out
// for display. Any previous run results are dropped.
func (m *Model) recompile() {
	d := demos[m.demoIdx]

	opts := mbqcirq.DefaultOptions()
	opts.CorrectionOrder = m.order
	if d.allPlanes {
		opts.PlaneSupport = mbqcirq.PlanesAll
	}

	m.compiled = nil
	m.layout = nil
	m.counts = nil
	m.runErr = nil
	m.job = nil
	m.running = false

	cp, err := mbqcirq.Compile(d.build(m.angle), opts)
	if err != nil {
		m.compileErr = err
		return
	}
	layout, steps, err := mbqcirq.LayoutProgram(cp.Program)
	if err != nil {
		m.compileErr = err
		return
	}
	m.compiled = cp
	m.layout = layout
	m.steps = steps
	m.compileErr = nil
}

// fetchResults pulls the histogram of a finished job in the current raw or
// decoded presentation.
func (m *Model) fetchResults() {
	if m.job == nil || !m.job.IsDone() {
		return
	}
	m.running = false
	if err := m.job.Err(); err != nil {
		m.runErr = err
		m.counts = nil
		return
	}
	raw := m.raw
	if m.compiled != nil && len(m.compiled.Pattern.OutputNodes) == 0 {
		raw = true
	}
	counts, _ := m.job.Result(raw)
	m.counts = counts
}

// parseAngle accepts plain numbers in units of pi and pi expressions in
// radians ("pi/4" means an angle of 1/4).
func parseAngle(s string) (float64, bool) {
	val, ok := mbqcirq.ParseParamExpr(s)
	if !ok {
		return 0, false
	}
	if strings.Contains(strings.ToLower(s), "pi") {
		val /= math.Pi
	}
	return val, true
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.running {
			m.fetchResults()
			if m.running {
				cmds = append(cmds, tick())
			}
		}

	case spinner.TickMsg:
		if m.running {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusDemos:
			switch key {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.demoIdx > 0 {
					m.demoIdx--
					m.recompile()
				}
			case "down", "j":
				if m.demoIdx < len(demos)-1 {
					m.demoIdx++
					m.recompile()
				}
			case "a":
				m.focus = focusAngle
				m.angleInput.SetValue("")
				m.angleInput.Focus()
				cmds = append(cmds, textinput.Blink)
			case "o":
				if m.order == mbqcirq.CorrectionsBeforeRotation {
					m.order = mbqcirq.CorrectionsAroundRotation
				} else {
					m.order = mbqcirq.CorrectionsBeforeRotation
				}
				m.recompile()
			case "v":
				m.showQASM = !m.showQASM
			case "+", "=":
				m.shots *= 2
			case "-":
				if m.shots > 1 {
					m.shots /= 2
				}
			case "t":
				m.raw = !m.raw
				m.fetchResults()
			case "r":
				if m.compiled != nil && !m.running {
					m.job = m.exec.Submit(m.compiled, m.shots)
					m.running = true
					m.counts = nil
					m.runErr = nil
					cmds = append(cmds, tick(), m.spin.Tick)
				}
			case "x":
				if m.job != nil && m.running {
					m.job.Cancel()
				}
			}

		case focusAngle:
			switch key {
			case "esc":
				m.focus = focusDemos
				m.angleInput.Blur()
			case "enter":
				val, ok := parseAngle(m.angleInput.Value())
				if !ok {
					m.statusMsg = "Invalid angle — use numbers or pi expressions (e.g. 0.5, pi/4)"
					break
				}
				m.angle = val
				m.focus = focusDemos
				m.angleInput.Blur()
				m.recompile()
			default:
				var cmd tea.Cmd
				m.angleInput, cmd = m.angleInput.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}
