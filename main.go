package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
)

func main() {
	var (
		algo    = flag.String("algo", "", "run headless: bell, dj, grover, simon")
		qubits  = flag.Int("qubits", 3, "qubit count for headless algorithms")
		shots   = flag.Int("shots", 1024, "shots per run")
		target  = flag.Int("target", 0, "Grover target basis state")
		secret  = flag.Int("secret", 1, "Simon secret bitstring (as integer)")
		oracle  = flag.String("oracle", "balanced", "Deutsch-Jozsa oracle: constant0, constant1, balanced")
		variant = flag.String("bell", "phi+", "Bell variant: phi+, phi-, psi+, psi-")
		noise   = flag.String("noise", "ideal", "noise preset: ideal, realistic-2025, high-fidelity, nisq-realistic")
		seed    = flag.Int64("seed", 0, "RNG seed, 0 means time-based")
		preset  = flag.String("preset", "", "export a preset circuit: bell, ghz, grover2, qft3")
		export  = flag.String("export", "", "export format for -preset: qasm, json")
		verbose = flag.Bool("verbose", false, "debug logging and raw result dumps")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	noiseModel, ok := NoisePreset(*noise)
	if !ok {
		logger.Fatal("unknown noise preset", "name", *noise)
	}

	if *preset != "" {
		if err := exportPreset(*preset, *export); err != nil {
			logger.Fatal("export failed", "err", err)
		}
		return
	}

	if *algo != "" {
		if err := runHeadless(*algo, *qubits, *shots, *target, *secret, *oracle, *variant, rng, logger, *verbose); err != nil {
			logger.Fatal("run failed", "err", err)
		}
		return
	}

	ex := NewLocalExecutor(noiseModel, *seed, logger)
	p := tea.NewProgram(initialModel(ex), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Fatal("tui error", "err", err)
	}
}

// exportPreset prints a preset circuit in the requested format.
func exportPreset(preset, format string) error {
	c := buildPresetCircuit(preset)
	switch format {
	case "", "qasm":
		fmt.Print(c.ToQASM())
	case "json":
		data, err := c.ToSpec(preset).EncodeJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}

// runHeadless executes one of the built-in algorithms and logs the outcome.
func runHeadless(algo string, qubits, shots, target, secret int, oracle, variant string, rng *rand.Rand, logger *log.Logger, verbose bool) error {
	switch algo {
	case "bell":
		v, err := parseBellVariant(variant)
		if err != nil {
			return err
		}
		res := RunBell(v, shots, rng)
		logger.Info("bell state sampled",
			"variant", res.Variant.String(), "shots", res.Shots,
			"correlation", fmt.Sprintf("%.4f", res.Correlation))
		dumpCounts(res.Counts, shots, verbose)

	case "dj":
		o, err := parseOracle(oracle)
		if err != nil {
			return err
		}
		res := RunDeutschJozsa(qubits, o, shots, rng)
		verdict := "balanced"
		if res.IsConstant {
			verdict = "constant"
		}
		logger.Info("deutsch-jozsa finished",
			"oracle", res.Oracle.String(), "qubits", qubits, "verdict", verdict)
		dumpCounts(res.Counts, shots, verbose)

	case "grover":
		res := RunGrover(qubits, target, shots, rng)
		logger.Info("grover finished",
			"target", FormatBasisState(res.Target, qubits),
			"iterations", res.Iterations,
			"success", fmt.Sprintf("%.4f", res.SuccessProb),
			"theory", fmt.Sprintf("%.4f", res.TheoreticalProb))
		dumpCounts(res.Counts, shots, verbose)

	case "simon":
		res := RunSimon(qubits, secret, shots, rng)
		if res.Secret != nil {
			logger.Info("simon recovered secret",
				"secret", FormatBasisState(*res.Secret, qubits),
				"agreement", fmt.Sprintf("%.4f", res.Agreement))
		} else {
			logger.Warn("simon found no consistent secret",
				"agreement", fmt.Sprintf("%.4f", res.Agreement))
		}
		dumpCounts(res.Measurements, shots, verbose)

	default:
		return fmt.Errorf("unknown algorithm %q", algo)
	}
	return nil
}

func dumpCounts(counts map[string]int, shots int, verbose bool) {
	if verbose {
		spew.Fdump(os.Stderr, counts)
		return
	}
	for state, count := range counts {
		fmt.Printf("|%s⟩  %6d  (%.1f%%)\n", state, count, 100*float64(count)/float64(shots))
	}
}

func parseBellVariant(s string) (BellVariant, error) {
	switch s {
	case "phi+":
		return BellPhiPlus, nil
	case "phi-":
		return BellPhiMinus, nil
	case "psi+":
		return BellPsiPlus, nil
	case "psi-":
		return BellPsiMinus, nil
	}
	return 0, fmt.Errorf("unknown Bell variant %q", s)
}

func parseOracle(s string) (OracleType, error) {
	switch s {
	case "constant0":
		return OracleConstantZero, nil
	case "constant1":
		return OracleConstantOne, nil
	case "balanced":
		return OracleBalanced, nil
	}
	return 0, fmt.Errorf("unknown oracle %q", s)
}
