package main

import (
	"fmt"
	"math"
	"strings"
)

// parameterHint provides a hint for parameter input
type parameterHint struct {
	required bool
	example  string
}

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateType    string
	symbol      string
	needsTarget bool
	needsParams bool
	paramHint   parameterHint
	preset      string // non-empty for circuit presets
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gateType: "H", symbol: "H"},
			{name: "Pauli-X (NOT)", gateType: "X", symbol: "X"},
			{name: "Pauli-Y", gateType: "Y", symbol: "Y"},
			{name: "Pauli-Z", gateType: "Z", symbol: "Z"},
			{name: "Identity", gateType: "I", symbol: "I"},
			{name: "Phase (S)", gateType: "S", symbol: "S"},
			{name: "Phase Dagger (S†)", gateType: "SDG", symbol: "S†"},
			{name: "T Gate", gateType: "T", symbol: "T"},
			{name: "T Dagger (T†)", gateType: "TDG", symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gateType: "RX", symbol: "RX", needsParams: true, paramHint: parameterHint{required: true, example: "pi/2"}},
			{name: "Rotate Y", gateType: "RY", symbol: "RY", needsParams: true, paramHint: parameterHint{required: true, example: "pi/2"}},
			{name: "Rotate Z", gateType: "RZ", symbol: "RZ", needsParams: true, paramHint: parameterHint{required: true, example: "pi/2"}},
			{name: "Phase Shift", gateType: "P", symbol: "P", needsParams: true, paramHint: parameterHint{required: true, example: "pi/4"}},
			{name: "Universal U3", gateType: "U3", symbol: "U3", needsParams: true, paramHint: parameterHint{required: true, example: "theta,phi,lambda"}},
		},
	},
	{
		name: "Multi Qubit",
		items: []menuItem{
			{name: "CNOT", gateType: "CX", symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Z", gateType: "CZ", symbol: "●─●", needsTarget: true},
			{name: "SWAP", gateType: "SWAP", symbol: "×─×", needsTarget: true},
			{name: "C-Phase (CP)", gateType: "CP", symbol: "●─P", needsTarget: true, needsParams: true, paramHint: parameterHint{required: true, example: "pi/2"}},
			{name: "Toffoli (CCX)", gateType: "CCX", symbol: "●─●─⊕", needsTarget: true},
		},
	},
	{
		name: "Measurement",
		items: []menuItem{
			{name: "Measure", gateType: "MEASURE", symbol: "M"},
			{name: "Barrier", gateType: "BARRIER", symbol: "┃"},
		},
	},
	{
		name: "Presets",
		items: []menuItem{
			{name: "Bell pair (Φ+)", preset: "bell", symbol: "H●⊕"},
			{name: "GHZ state (3q)", preset: "ghz", symbol: "H●●"},
			{name: "Grover 2q |11⟩", preset: "grover2", symbol: "G"},
			{name: "QFT (3q)", preset: "qft3", symbol: "QFT"},
		},
	},
}

// buildPresetCircuit returns a fresh circuit for a named preset.
func buildPresetCircuit(preset string) *Circuit {
	c := &Circuit{}
	switch preset {
	case "bell":
		c.NumQubits = 2
		c.AddGate("H", 0, 0)
		c.AddGate("CX", 1, 1, 0)
		c.AddGate("MEASURE", 0, 2)
		c.AddGate("MEASURE", 1, 2)
	case "ghz":
		c.NumQubits = 3
		c.AddGate("H", 0, 0)
		c.AddGate("CX", 1, 1, 0)
		c.AddGate("CX", 2, 2, 1)
	case "grover2":
		// One oracle/diffusion round is exact for N=4.
		c.NumQubits = 2
		c.AddGate("H", 0, 0)
		c.AddGate("H", 1, 0)
		c.AddGate("CZ", 1, 1, 0)
		c.AddGate("H", 0, 2)
		c.AddGate("H", 1, 2)
		c.AddGate("X", 0, 3)
		c.AddGate("X", 1, 3)
		c.AddGate("CZ", 1, 4, 0)
		c.AddGate("X", 0, 5)
		c.AddGate("X", 1, 5)
		c.AddGate("H", 0, 6)
		c.AddGate("H", 1, 6)
	case "qft3":
		c.NumQubits = 3
		c.AddGate("H", 0, 0)
		c.AddParameterizedGate("CP", 0, 1, []float64{math.Pi / 2}, 1)
		c.AddParameterizedGate("CP", 0, 2, []float64{math.Pi / 4}, 2)
		c.AddGate("H", 1, 3)
		c.AddParameterizedGate("CP", 1, 4, []float64{math.Pi / 2}, 2)
		c.AddGate("H", 2, 5)
		c.AddGate("SWAP", 2, 6, 0)
	default:
		c.NumQubits = defaultQubits
	}
	return c
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// isParameterizedGate returns true if the gate type requires parameters
func isParameterizedGate(gateType string) bool {
	switch gateType {
	case "RX", "RY", "RZ", "P", "U3", "CP":
		return true
	}
	return false
}
