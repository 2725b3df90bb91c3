package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM 2.0 parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+\w+\[(\d+)\]`)
)

// ExportQASM renders a circuit as OpenQASM 2.0 text: header, register
// declarations sized to the qubit count, one line per recognized gate, and a
// trailing measurement of every qubit into its matching classical bit.
// Unrecognized gates degrade to a comment line rather than failing; explicit
// measure instructions are folded into the trailing block.
func ExportQASM(numQubits int, instructions []GateInstruction) string {
	if numQubits < 1 {
		numQubits = 1
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numQubits)

	for _, inst := range instructions {
		writeInstructionQASM(&sb, inst)
	}

	sb.WriteString("\n")
	for q := 0; q < numQubits; q++ {
		fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", q, q)
	}
	return sb.String()
}

func writeInstructionQASM(sb *strings.Builder, inst GateInstruction) {
	qubitList := func() string {
		parts := make([]string, len(inst.Qubits))
		for i, q := range inst.Qubits {
			parts[i] = fmt.Sprintf("q[%d]", q)
		}
		return strings.Join(parts, ", ")
	}

	switch inst.Name {
	case "measure":
		// Covered by the trailing measure-all block.
	case "barrier":
		fmt.Fprintf(sb, "barrier %s;\n", qubitList())
	case "h", "x", "y", "z", "s", "sdg", "t", "tdg", "id":
		fmt.Fprintf(sb, "%s q[%d];\n", inst.Name, inst.Qubits[0])
	case "rx", "ry", "rz", "p":
		fmt.Fprintf(sb, "%s(%s) q[%d];\n", inst.Name, formatParam(inst.Params[0]), inst.Qubits[0])
	case "u3":
		fmt.Fprintf(sb, "u3(%s, %s, %s) q[%d];\n",
			formatParam(inst.Params[0]), formatParam(inst.Params[1]), formatParam(inst.Params[2]), inst.Qubits[0])
	case "cx", "cz", "swap":
		fmt.Fprintf(sb, "%s q[%d], q[%d];\n", inst.Name, inst.Qubits[0], inst.Qubits[1])
	case "cp":
		fmt.Fprintf(sb, "cu1(%s) q[%d], q[%d];\n", formatParam(inst.Params[0]), inst.Qubits[0], inst.Qubits[1])
	case "ccx":
		fmt.Fprintf(sb, "ccx q[%d], q[%d], q[%d];\n", inst.Qubits[0], inst.Qubits[1], inst.Qubits[2])
	default:
		fmt.Fprintf(sb, "// unsupported gate: %s %s\n", inst.Name, qubitList())
	}
}

// ToQASM renders the editable circuit as OpenQASM 2.0.
func (c *Circuit) ToQASM() string {
	return ExportQASM(max(c.NumQubits, 1), c.Instructions())
}

// ParseQASM rebuilds the circuit from QASM 2.0 text, replacing its current
// contents. Each recognized statement advances the step counter by one;
// unrecognized statements are skipped.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "qreg"):
			if m := qregRegex.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[1])
				c.NumQubits = n
			}
			continue
		case strings.HasPrefix(line, "creg"):
			continue
		case strings.HasPrefix(line, "barrier"):
			c.AddBarrier(step)
			step++
			continue
		}

		if m := measureRegex.FindStringSubmatch(line); m != nil {
			source, _ := strconv.Atoi(m[1])
			c.AddGate("MEASURE", source, step)
			step++
			continue
		}

		if m := threeQubitRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToLower(m[1])
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			q3, _ := strconv.Atoi(m[4])
			if name == "ccx" || name == "toffoli" {
				c.AddToffoli(q1, q2, q3, step)
				step++
			}
			continue
		}

		if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToLower(m[1])
			param, _ := parseParamExpr(m[2])
			q1, _ := strconv.Atoi(m[3])
			q2, _ := strconv.Atoi(m[4])
			if name == "cp" || name == "cu1" {
				c.AddParameterizedGate("CP", q2, step, []float64{param}, q1)
				step++
			}
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			q1, _ := strconv.Atoi(m[2])
			q2, _ := strconv.Atoi(m[3])
			switch name {
			case "CX", "CZ", "SWAP":
				c.AddGate(name, q2, step, q1)
				step++
			}
			continue
		}

		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			target, _ := strconv.Atoi(m[3])
			var params []float64
			for _, pStr := range strings.Split(m[2], ",") {
				if p, ok := parseParamExpr(strings.TrimSpace(pStr)); ok {
					params = append(params, p)
				}
			}
			if name == "U1" {
				name = "P"
			}
			c.AddParameterizedGate(name, target, step, params)
			step++
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			target, _ := strconv.Atoi(m[2])
			switch name {
			case "SDG", "TDG":
				c.AddDaggerGate(strings.TrimSuffix(name, "DG"), target, step)
			case "ID":
				c.AddGate("I", target, step)
			default:
				c.AddGate(name, target, step)
			}
			step++
			continue
		}
	}

	return nil
}
