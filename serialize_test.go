package main

import (
	"errors"
	"testing"
)

func bellSpec() *CircuitSpec {
	return &CircuitSpec{
		Qubits: 2,
		Cbits:  2,
		Name:   "bell",
		Instructions: []GateInstruction{
			{Name: "h", Qubits: []int{0}},
			{Name: "cx", Qubits: []int{0, 1}},
			{Name: "measure", Qubits: []int{0}},
			{Name: "measure", Qubits: []int{1}},
		},
	}
}

func TestCircuitSpecRoundTrip(t *testing.T) {
	spec := bellSpec()
	data, err := spec.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}

	decoded, err := DecodeCircuitJSON(data)
	if err != nil {
		t.Fatalf("DecodeCircuitJSON: %v", err)
	}
	if decoded.Qubits != 2 || decoded.Name != "bell" {
		t.Errorf("decoded header: %+v", decoded)
	}
	if len(decoded.Instructions) != 4 {
		t.Fatalf("decoded %d instructions, want 4", len(decoded.Instructions))
	}
	if decoded.Instructions[1].Name != "cx" ||
		decoded.Instructions[1].Qubits[0] != 0 || decoded.Instructions[1].Qubits[1] != 1 {
		t.Errorf("instruction 1 = %+v", decoded.Instructions[1])
	}

	// Re-encoding is byte-identical.
	again, err := decoded.EncodeJSON()
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if string(again) != string(data) {
		t.Error("re-encoded document differs")
	}
}

func TestDecodeRejectsUnsupportedGate(t *testing.T) {
	doc := []byte(`{"qubits":1,"cbits":0,"instructions":[{"name":"warp","qubits":[0]}]}`)
	_, err := DecodeCircuitJSON(doc)
	var ug *UnsupportedGateError
	if !errors.As(err, &ug) {
		t.Fatalf("err = %v, want *UnsupportedGateError", err)
	}
	if ug.Name != "warp" {
		t.Errorf("gate name = %q", ug.Name)
	}
}

func TestDecodeRejectsMissingParams(t *testing.T) {
	doc := []byte(`{"qubits":1,"cbits":0,"instructions":[{"name":"rx","qubits":[0]}]}`)
	_, err := DecodeCircuitJSON(doc)
	var mp *MissingParamsError
	if !errors.As(err, &mp) {
		t.Fatalf("err = %v, want *MissingParamsError", err)
	}
	if mp.Name != "rx" || mp.Want != 1 {
		t.Errorf("error fields: %+v", mp)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := DecodeCircuitJSON([]byte(`{"qubits": `))
	if !errors.Is(err, ErrMalformedCircuit) {
		t.Errorf("err = %v, want ErrMalformedCircuit", err)
	}
}

func TestValidateQubitRange(t *testing.T) {
	spec := &CircuitSpec{
		Qubits:       2,
		Instructions: []GateInstruction{{Name: "h", Qubits: []int{2}}},
	}
	if err := spec.Validate(); !errors.Is(err, ErrMalformedCircuit) {
		t.Errorf("out-of-range qubit: err = %v", err)
	}

	bad := &CircuitSpec{Qubits: 0}
	if err := bad.Validate(); !errors.Is(err, ErrMalformedCircuit) {
		t.Errorf("zero qubits: err = %v", err)
	}

	// Wrong arity for a known gate reads as unsupported.
	arity := &CircuitSpec{
		Qubits:       2,
		Instructions: []GateInstruction{{Name: "cx", Qubits: []int{0}}},
	}
	var ug *UnsupportedGateError
	if err := arity.Validate(); !errors.As(err, &ug) {
		t.Errorf("bad arity: err = %v", err)
	}
}

func TestSpecDepthAndMeasuredQubits(t *testing.T) {
	spec := bellSpec()
	// h(0) step 0, cx step 1, measures step 2 (parallel).
	if got := spec.Depth(); got != 3 {
		t.Errorf("Depth = %d, want 3", got)
	}
	measured := spec.MeasuredQubits()
	if len(measured) != 2 || measured[0] != 0 || measured[1] != 1 {
		t.Errorf("MeasuredQubits = %v", measured)
	}
}

func TestScheduleStepsParallelism(t *testing.T) {
	insts := []GateInstruction{
		{Name: "h", Qubits: []int{0}},
		{Name: "h", Qubits: []int{1}},
		{Name: "cx", Qubits: []int{0, 1}},
		{Name: "x", Qubits: []int{2}},
	}
	steps := ScheduleSteps(insts)
	want := []int{0, 0, 1, 0}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step[%d] = %d, want %d (all: %v)", i, steps[i], want[i], steps)
		}
	}
	if got := ScheduleDepth(insts); got != 2 {
		t.Errorf("depth = %d, want 2", got)
	}
}

func TestScheduleBarrierFencesAllQubits(t *testing.T) {
	insts := []GateInstruction{
		{Name: "h", Qubits: []int{0}},
		{Name: "barrier", Qubits: []int{0, 1, 2}},
		{Name: "x", Qubits: []int{2}},
	}
	steps := ScheduleSteps(insts)
	// The barrier lands after the H; the X must wait behind the barrier even
	// though qubit 2 was free.
	if steps[1] != 1 || steps[2] != 2 {
		t.Errorf("steps = %v, want [0 1 2]", steps)
	}
}
