package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultQubits = 4
	defaultShots  = 1024
)

// noisePresets is the cycle order for the n key.
var noisePresets = []NoiseModel{NoiseIdeal, NoiseRealistic2025, NoiseHighFidelity, NoiseNISQ}

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControls
	focusInputParam
	focusResults
)

// Model represents the TUI application state.
type Model struct {
	circuit       *Circuit
	executor      *LocalExecutor
	cursorQubit   int
	cursorStep    int
	viewStartStep int // first step currently visible in the view
	width         int
	height        int
	qasmEditor    textarea.Model
	focus         focus
	lastQASM      string
	statusMsg     string // transient status message (e.g. save confirmation)

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for multi-qubit gates)
	pendingGate   string
	targetQubit   int
	paramInput    string
	controlQubits []int

	// Execution state
	noiseIdx   int
	shots      int
	lastResult *ExecutionResult
	lastJob    *Job
	runErr     error
}

func initialModel(ex *LocalExecutor) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:  &Circuit{NumQubits: defaultQubits},
		executor: ex,
		shots:    defaultShots,
		focus:    focusCircuit,
	}
	m.qasmEditor = ta
	m.syncQASM()
	return m
}

// syncQASM refreshes the editor pane from the circuit.
func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput rebuilds the circuit when the editor text changed.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm != m.lastQASM {
		c := &Circuit{NumQubits: m.circuit.NumQubits}
		if err := c.ParseQASM(qasm); err == nil {
			m.circuit = c
		}
		m.lastQASM = qasm
	}
}

// runCircuit executes the current circuit on the local backend.
func (m *Model) runCircuit() {
	m.executor.SetNoiseModel(noisePresets[m.noiseIdx])
	spec := m.circuit.ToSpec("editor")
	job, err := m.executor.SubmitJob(spec, m.shots)
	if err != nil {
		m.runErr = err
		m.lastResult = nil
		m.lastJob = nil
	} else {
		m.lastJob = job
		m.lastResult = job.Result
		m.runErr = job.Error
	}
	m.focus = focusResults
}

// placeGate places a gate on the circuit at the cursor position.
// targetQ is the target qubit for multi-qubit gates (-1 for single-qubit).
// Returns true if placement succeeded, false if blocked by conflict.
func (m *Model) placeGate(gateType string, targetQ int) bool {
	var qubitsNeeded []int
	switch gateType {
	case "CX", "CZ", "SWAP", "CP":
		qubitsNeeded = []int{m.cursorQubit, targetQ}
	case "CCX":
		qubitsNeeded = append([]int{m.cursorQubit, targetQ}, m.controlQubits...)
	case "BARRIER":
		qubitsNeeded = nil
	default:
		qubitsNeeded = []int{m.cursorQubit}
	}

	if len(qubitsNeeded) > 0 && !m.circuit.CanPlaceAt(m.cursorStep, qubitsNeeded) {
		m.statusMsg = "Cannot place: qubit already used by another gate at this step"
		m.clearPending()
		return false
	}

	for _, q := range qubitsNeeded {
		m.circuit.RemoveGateAt(m.cursorStep, q)
	}

	switch gateType {
	case "CX", "CZ", "SWAP":
		m.circuit.AddGate(gateType, targetQ, m.cursorStep, m.cursorQubit)
	case "CP":
		params := parseParamList(m.paramInput)
		if len(params) == 0 {
			params = []float64{0.0}
		}
		m.circuit.AddParameterizedGate("CP", targetQ, m.cursorStep, params[:1], m.cursorQubit)
	case "CCX":
		controls := append([]int{m.cursorQubit}, m.controlQubits...)
		if len(controls) >= 2 {
			m.circuit.AddToffoli(controls[0], controls[1], targetQ, m.cursorStep)
		}
	case "MEASURE":
		m.circuit.AddGate("MEASURE", m.cursorQubit, m.cursorStep)
	case "BARRIER":
		m.circuit.AddBarrier(m.cursorStep)
	case "RX", "RY", "RZ", "P":
		params := parseParamList(m.paramInput)
		if len(params) == 0 {
			params = []float64{0.0}
		}
		m.circuit.AddParameterizedGate(gateType, m.cursorQubit, m.cursorStep, params[:1])
	case "U3":
		params := parseParamList(m.paramInput)
		for len(params) < 3 {
			params = append(params, 0.0)
		}
		m.circuit.AddParameterizedGate("U3", m.cursorQubit, m.cursorStep, params[:3])
	case "SDG", "TDG":
		m.circuit.AddDaggerGate(strings.TrimSuffix(gateType, "DG"), m.cursorQubit, m.cursorStep)
	default:
		m.circuit.AddGate(gateType, m.cursorQubit, m.cursorStep)
	}

	m.clearPending()
	m.cursorStep++
	m.circuit.MaxSteps = max(m.circuit.MaxSteps, m.cursorStep)
	m.syncQASM()
	return true
}

func (m *Model) clearPending() {
	m.paramInput = ""
	m.controlQubits = nil
	m.pendingGate = ""
}

// nextFreeTarget picks the first qubit usable as a target, skipping the
// cursor qubit and chosen controls.
func (m *Model) nextFreeTarget() int {
	if m.cursorQubit+1 < m.circuit.NumQubits {
		return m.cursorQubit + 1
	}
	return m.cursorQubit - 1
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH-8, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "r":
				m.runCircuit()
			case "n":
				m.noiseIdx = (m.noiseIdx + 1) % len(noisePresets)
				m.statusMsg = "Noise model: " + noisePresets[m.noiseIdx].Name
			case "ctrl+r":
				m.circuit.Gates = nil
				m.circuit.MaxSteps = 0
				m.viewStartStep = 0
				m.syncQASM()
			case "ctrl+s":
				qasm := m.circuit.ToQASM()
				if err := os.WriteFile("circuit.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
					if m.cursorStep < m.viewStartStep {
						m.viewStartStep = m.cursorStep
					}
				}
			case "right", "l":
				m.cursorStep++
				m.circuit.MaxSteps = max(m.circuit.MaxSteps, m.cursorStep)
			case "+", "=":
				if m.circuit.NumQubits < maxRegisterQubits {
					m.circuit.NumQubits++
					m.syncQASM()
				}
			case "-":
				if m.circuit.NumQubits > 1 {
					m.circuit.NumQubits--
					m.cursorQubit = min(m.cursorQubit, m.circuit.NumQubits-1)
					m.circuit.RemoveGatesOnQubit(m.circuit.NumQubits)
					m.syncQASM()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
				m.syncQASM()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]

				if item.preset != "" {
					m.circuit = buildPresetCircuit(item.preset)
					m.cursorQubit, m.cursorStep, m.viewStartStep = 0, 0, 0
					m.syncQASM()
					m.focus = focusCircuit
					break
				}

				m.pendingGate = item.gateType

				if isParameterizedGate(item.gateType) {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}

				if item.gateType == "CCX" {
					if m.circuit.NumQubits < 3 {
						break
					}
					m.controlQubits = nil
					m.focus = focusSelectControls
					m.targetQubit = m.nextFreeTarget()
					break
				}

				if item.needsTarget {
					if m.circuit.NumQubits < 2 {
						break
					}
					m.focus = focusSelectTarget
					m.targetQubit = m.nextFreeTarget()
				} else {
					if m.placeGate(item.gateType, -1) {
						m.focus = focusCircuit
					}
				}
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit && !slices.Contains(m.controlQubits, next) {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circuit.NumQubits; next++ {
					if next != m.cursorQubit && !slices.Contains(m.controlQubits, next) {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				if m.placeGate(m.pendingGate, m.targetQubit) {
					m.focus = focusCircuit
				}
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circuit.NumQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.controlQubits = append(m.controlQubits, m.targetQubit)
				m.focus = focusSelectTarget
				for q := 0; q < m.circuit.NumQubits; q++ {
					if q != m.cursorQubit && !slices.Contains(m.controlQubits, q) {
						m.targetQubit = q
						break
					}
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.clearPending()
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				params := parseParamList(m.paramInput)
				if m.paramInput != "" && params == nil {
					m.statusMsg = "Invalid parameter — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
					break
				}
				item := gateMenu[m.menuCat].items[m.menuItem]
				if item.needsTarget {
					if m.circuit.NumQubits < 2 {
						break
					}
					m.focus = focusSelectTarget
					m.targetQubit = m.nextFreeTarget()
				} else {
					if m.placeGate(m.pendingGate, -1) {
						m.focus = focusCircuit
					}
				}
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' || ch == '-' || ch == 'e' || ch == 'E' || ch == '+' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.paramInput += key
					}
				}
			}

		case focusResults:
			switch key {
			case "esc", "enter", "q":
				m.focus = focusCircuit
			case "r":
				m.runCircuit()
			case "n":
				m.noiseIdx = (m.noiseIdx + 1) % len(noisePresets)
				m.runCircuit()
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	if m.focus == focusInputParam {
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}
	if m.focus == focusResults {
		frame = overlayAt(frame, m.renderResultsPanel(), 2, 2)
	}

	return frame
}

// renderParamInput renders parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Parameter"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Value: %s_", m.paramInput))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2, 3*pi/4, 1.57"))
	return menuBorderStyle.Render(sb.String())
}
