package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GateInstruction is one flat gate record in the interchange format:
// a canonical lowercase name, the qubit indices it touches, and optional
// parameters for rotations and phases.
type GateInstruction struct {
	Name   string    `json:"name"`
	Qubits []int     `json:"qubits"`
	Params []float64 `json:"params,omitempty"`
}

// CircuitSpec is the flat, cross-platform circuit record consumed by the
// execution layer and the remote bridge.
type CircuitSpec struct {
	Qubits       int               `json:"qubits"`
	Cbits        int               `json:"cbits"`
	Instructions []GateInstruction `json:"instructions"`
	Name         string            `json:"name,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ErrMalformedCircuit wraps JSON-level decode failures so callers can
// distinguish them from gate-level validation errors.
var ErrMalformedCircuit = errors.New("malformed circuit document")

// UnsupportedGateError reports a gate name outside the canonical set, or a
// known name used with the wrong qubit arity.
type UnsupportedGateError struct {
	Name string
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("unsupported gate %q", e.Name)
}

// MissingParamsError reports a parameterized gate without enough parameters.
type MissingParamsError struct {
	Name string
	Want int
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("gate %q requires %d parameter(s)", e.Name, e.Want)
}

// Validate checks every instruction against the canonical gate table.
func (c *CircuitSpec) Validate() error {
	if c.Qubits < 1 {
		return fmt.Errorf("%w: qubit count %d", ErrMalformedCircuit, c.Qubits)
	}
	for _, inst := range c.Instructions {
		shape, ok := gateShapes[inst.Name]
		if !ok {
			return &UnsupportedGateError{Name: inst.Name}
		}
		if shape.qubits >= 0 && len(inst.Qubits) != shape.qubits {
			return &UnsupportedGateError{Name: inst.Name}
		}
		if len(inst.Params) < shape.params {
			return &MissingParamsError{Name: inst.Name, Want: shape.params}
		}
		for _, q := range inst.Qubits {
			if q < 0 || q >= c.Qubits {
				return fmt.Errorf("%w: gate %q references qubit %d of %d", ErrMalformedCircuit, inst.Name, q, c.Qubits)
			}
		}
	}
	return nil
}

// EncodeJSON renders the circuit as an indented JSON document. Field order is
// fixed by the struct and map keys are emitted sorted, so equal circuits
// always produce byte-identical documents.
func (c *CircuitSpec) EncodeJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.MarshalIndent(c, "", "  ")
}

// DecodeCircuitJSON parses and validates a circuit document. Unknown gate
// names and missing parameters fail with their typed errors rather than being
// silently dropped.
func DecodeCircuitJSON(data []byte) (*CircuitSpec, error) {
	var c CircuitSpec
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCircuit, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Depth returns the scheduled gate depth of the circuit (see schedule.go).
func (c *CircuitSpec) Depth() int {
	return ScheduleDepth(c.Instructions)
}

// MeasuredQubits returns the qubits with explicit measure instructions, in
// order of first appearance. Empty means "measure everything" to the
// execution layer.
func (c *CircuitSpec) MeasuredQubits() []int {
	seen := make(map[int]bool)
	var out []int
	for _, inst := range c.Instructions {
		if inst.Name != "measure" {
			continue
		}
		for _, q := range inst.Qubits {
			if !seen[q] {
				seen[q] = true
				out = append(out, q)
			}
		}
	}
	return out
}
