package main

// Step scheduling packs an ordered instruction list into parallel time steps:
// a gate lands in the earliest step where every qubit it touches is free,
// never earlier than a gate it depends on. Barriers fence all qubits.
// The resulting depth feeds the noise model's gate-depth parameter.

// ScheduleSteps returns the step index assigned to each instruction.
func ScheduleSteps(instructions []GateInstruction) []int {
	steps := make([]int, len(instructions))
	frontier := make(map[int]int) // qubit -> first free step
	fence := 0                    // earliest step allowed after the last barrier

	for i, inst := range instructions {
		if inst.Name == "barrier" {
			// The barrier occupies the step after everything before it.
			step := fence
			for _, free := range frontier {
				if free > step {
					step = free
				}
			}
			steps[i] = step
			fence = step + 1
			continue
		}

		step := fence
		for _, q := range inst.Qubits {
			if free, ok := frontier[q]; ok && free > step {
				step = free
			}
		}
		steps[i] = step
		for _, q := range inst.Qubits {
			frontier[q] = step + 1
		}
	}
	return steps
}

// ScheduleDepth returns the circuit depth: the number of parallel steps the
// instructions pack into. Measures and barriers count like gates, matching
// how the noise model accrues per-step decoherence.
func ScheduleDepth(instructions []GateInstruction) int {
	depth := 0
	for _, s := range ScheduleSteps(instructions) {
		if s+1 > depth {
			depth = s + 1
		}
	}
	return depth
}
