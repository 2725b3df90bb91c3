package main

import (
	"slices"
	"sort"
	"strings"
)

// Gate represents a gate placed on the editable circuit grid. The closed set
// of Type values mirrors the canonical instruction names, uppercased:
// H X Y Z S T I RX RY RZ P U3 CX CZ SWAP CP CCX MEASURE BARRIER.
type Gate struct {
	Type     string
	Target   int
	Control  int   // -1 if not a controlled gate
	Controls []int // both controls for CCX
	Step     int   // position in the circuit timeline
	Params   []float64
	IsDagger bool // adjoint variant for S/T
}

// Circuit holds the editable quantum circuit: a qubit count and gates placed
// on a step grid.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

func (c *Circuit) bumpSteps(step int) {
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddGate appends a gate at (target, step), with an optional control qubit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{Type: gateType, Target: target, Control: ctrl, Step: step})
	c.bumpSteps(step)
}

// AddParameterizedGate appends a gate carrying rotation/phase parameters.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{Type: gateType, Target: target, Control: ctrl, Step: step, Params: params})
	c.bumpSteps(step)
}

// AddToffoli appends a CCX with two controls.
func (c *Circuit) AddToffoli(c1, c2, target, step int) {
	c.Gates = append(c.Gates, Gate{Type: "CCX", Target: target, Control: -1, Controls: []int{c1, c2}, Step: step})
	c.bumpSteps(step)
}

// AddDaggerGate appends the adjoint of S or T.
func (c *Circuit) AddDaggerGate(gateType string, target, step int) {
	c.Gates = append(c.Gates, Gate{Type: gateType, Target: target, Control: -1, Step: step, IsDagger: true})
	c.bumpSteps(step)
}

// AddBarrier appends a barrier spanning all qubits, replacing any existing
// barrier at the step.
func (c *Circuit) AddBarrier(step int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.Type == "BARRIER"
	})
	c.Gates = append(c.Gates, Gate{Type: "BARRIER", Target: -1, Control: -1, Step: step})
	c.bumpSteps(step)
}

// references reports whether the gate touches the given qubit.
func (g Gate) references(qubit int) bool {
	if g.Target == qubit || g.Control == qubit {
		return true
	}
	return slices.Contains(g.Controls, qubit)
}

// RemoveGateAt removes any gate at (step, qubit); barriers at the step go too
// since they span all qubits.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		if g.Step == step && g.Type == "BARRIER" {
			return true
		}
		return g.Step == step && g.references(qubit)
	})
}

// RemoveGatesOnQubit removes every gate touching the qubit.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.references(qubit)
	})
}

// GateAt returns the gate at (step, qubit), or nil.
func (c *Circuit) GateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.references(qubit) {
			return g
		}
	}
	return nil
}

// CanPlaceAt reports whether all the listed qubits are free at the step.
func (c *Circuit) CanPlaceAt(step int, qubits []int) bool {
	for _, g := range c.Gates {
		if g.Step != step || g.Type == "BARRIER" {
			continue
		}
		for _, q := range qubits {
			if g.references(q) {
				return false
			}
		}
	}
	return true
}

// NumCbits returns the classical bits needed: one per measured qubit index up
// to the highest, zero when nothing is measured.
func (c *Circuit) NumCbits() int {
	maxMeasured := -1
	for _, g := range c.Gates {
		if g.Type == "MEASURE" && g.Target > maxMeasured {
			maxMeasured = g.Target
		}
	}
	return maxMeasured + 1
}

// MeasureAtStep returns the qubit measured at the step, or -1.
func (c *Circuit) MeasureAtStep(step int) int {
	for _, g := range c.Gates {
		if g.Step == step && g.Type == "MEASURE" {
			return g.Target
		}
	}
	return -1
}

// instructionName maps a grid gate to its canonical serialized name.
func (g Gate) instructionName() string {
	switch g.Type {
	case "I":
		return "id"
	case "S", "T":
		if g.IsDagger {
			return strings.ToLower(g.Type) + "dg"
		}
	}
	return strings.ToLower(g.Type)
}

// instructionQubits lists the gate's qubits in serialized order: controls
// first, then the target.
func (g Gate) instructionQubits() []int {
	switch {
	case len(g.Controls) == 2:
		return []int{g.Controls[0], g.Controls[1], g.Target}
	case g.Control >= 0:
		return []int{g.Control, g.Target}
	default:
		return []int{g.Target}
	}
}

// orderedGates returns the gates sorted by step, insertion order preserved
// within a step.
func (c *Circuit) orderedGates() []Gate {
	ordered := make([]Gate, len(c.Gates))
	copy(ordered, c.Gates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Step < ordered[j].Step
	})
	return ordered
}

// Instructions flattens the grid into the serialized instruction order.
func (c *Circuit) Instructions() []GateInstruction {
	out := make([]GateInstruction, 0, len(c.Gates))
	for _, g := range c.orderedGates() {
		inst := GateInstruction{Name: g.instructionName(), Params: g.Params}
		if g.Type == "BARRIER" {
			inst.Qubits = make([]int, c.NumQubits)
			for q := range inst.Qubits {
				inst.Qubits[q] = q
			}
		} else {
			inst.Qubits = g.instructionQubits()
		}
		out = append(out, inst)
	}
	return out
}

// ToSpec packages the circuit as a flat interchange record.
func (c *Circuit) ToSpec(name string) *CircuitSpec {
	return &CircuitSpec{
		Qubits:       c.NumQubits,
		Cbits:        c.NumCbits(),
		Instructions: c.Instructions(),
		Name:         name,
	}
}

// CircuitFromSpec rebuilds an editable grid from a flat circuit record,
// assigning steps by qubit availability.
func CircuitFromSpec(spec *CircuitSpec) (*Circuit, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	c := &Circuit{NumQubits: spec.Qubits}
	steps := ScheduleSteps(spec.Instructions)
	for i, inst := range spec.Instructions {
		step := steps[i]
		switch inst.Name {
		case "barrier":
			c.AddBarrier(step)
		case "measure":
			c.AddGate("MEASURE", inst.Qubits[0], step)
		case "ccx":
			c.AddToffoli(inst.Qubits[0], inst.Qubits[1], inst.Qubits[2], step)
		case "cx", "cz", "swap":
			c.AddGate(strings.ToUpper(inst.Name), inst.Qubits[1], step, inst.Qubits[0])
		case "cp":
			c.AddParameterizedGate("CP", inst.Qubits[1], step, inst.Params, inst.Qubits[0])
		case "sdg", "tdg":
			c.AddDaggerGate(strings.ToUpper(strings.TrimSuffix(inst.Name, "dg")), inst.Qubits[0], step)
		case "id":
			c.AddGate("I", inst.Qubits[0], step)
		case "rx", "ry", "rz", "p", "u3":
			c.AddParameterizedGate(strings.ToUpper(inst.Name), inst.Qubits[0], step, inst.Params)
		default:
			c.AddGate(strings.ToUpper(inst.Name), inst.Qubits[0], step)
		}
	}
	return c, nil
}

// Simulate replays the circuit on a fresh register, ignoring measures and
// barriers, and returns the final state. Gates past upToStep are skipped when
// upToStep >= 0.
func (c *Circuit) Simulate(upToStep int) (*Register, error) {
	n := c.NumQubits
	if n < 1 {
		n = 1
	}
	r := NewRegister(n)
	for _, g := range c.orderedGates() {
		if upToStep >= 0 && g.Step > upToStep {
			continue
		}
		if g.Type == "BARRIER" || g.Type == "MEASURE" {
			continue
		}
		inst := GateInstruction{Name: g.instructionName(), Qubits: g.instructionQubits(), Params: g.Params}
		if err := r.ApplyInstruction(inst); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ──────────────────────────── Grid cell info ────────────────────────────

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	gate := c.GateAt(step, qubit)
	if gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit || slices.Contains(gate.Controls, qubit)
		info.isTarget = gate.Target == qubit && (gate.Control >= 0 || len(gate.Controls) > 0)
	}

	for i := range c.Gates {
		if c.Gates[i].Step == step && c.Gates[i].Type == "BARRIER" {
			info.isBarrier = true
			if info.gate == nil {
				info.gate = &c.Gates[i]
			}
			break
		}
	}

	// Vertical wire segments for multi-qubit gates spanning this row.
	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}
		var minQ, maxQ int
		switch {
		case len(g.Controls) > 0:
			minQ, maxQ = g.Target, g.Target
			for _, ctrl := range g.Controls {
				minQ = min(minQ, ctrl)
				maxQ = max(maxQ, ctrl)
			}
		case g.Control >= 0:
			minQ, maxQ = min(g.Control, g.Target), max(g.Control, g.Target)
		default:
			continue
		}
		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.vertAbove = true
			}
			if qubit < maxQ {
				info.vertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}
