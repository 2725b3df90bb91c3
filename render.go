package main

import (
	"fmt"
	"sort"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// gateDisplayName returns a short display name for a gate.
func gateDisplayName(g *Gate) string {
	switch {
	case g.Type == "MEASURE":
		return "M"
	case g.IsDagger:
		return g.Type + "†"
	default:
		return g.Type
	}
}

// controlSymbol returns the wire symbol for the control qubit of a two-qubit gate.
func controlSymbol(gateType string) string {
	if gateType == "SWAP" {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit gate.
func targetSymbol(gateType string) string {
	switch gateType {
	case "CZ":
		return "●"
	case "SWAP":
		return "×"
	case "CP":
		return "P"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && info.isControl:
			sym := controlSymbol(info.gate.Type)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil && info.isTarget:
			sym := targetSymbol(info.gate.Type)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(gateDisplayName(info.gate), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && (info.isControl || info.isTarget):
		sym := controlSymbol(info.gate.Type)
		if info.isTarget {
			sym = targetSymbol(info.gate.Type)
		}
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)

	case info.gate != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.gate), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
		mid = strings.Repeat("─", cellW)
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString(dimStyle.Render("  noise: " + noisePresets[m.noiseIdx].Name))
	sb.WriteString("\n\n")

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+maxSteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := 0; qubit < m.circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+maxSteps; step++ {
			info := m.circuit.getCellInfo(step, qubit)

			hl := hlNone
			if step == m.cursorStep && qubit == m.cursorQubit && (m.focus == focusCircuit || m.focus == focusSelectTarget || m.focus == focusMenu) {
				hl = hlCursor
			} else if step == m.cursorStep && qubit == m.targetQubit && (m.focus == focusSelectTarget || m.focus == focusSelectControls) {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// ── Classical bit wire (single line) ──
	if numCbits := m.circuit.NumCbits(); numCbits > 0 {
		label := fmt.Sprintf("c%d", numCbits)
		cbitLine := cbitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + cbitWireStyle.Render("══")

		for step := startStep; step < startStep+maxSteps; step++ {
			measuredQubit := m.circuit.MeasureAtStep(step)
			if measuredQubit >= 0 {
				bitLabel := fmt.Sprintf("%d", measuredQubit)
				dashL := (cellW - 1) / 2
				dashR := max(cellW-dashL-1-len(bitLabel), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
					cbitLabelStyle.Render("╩"+bitLabel) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			} else {
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", cellW))
			}
		}
		sb.WriteString(cbitLine + "\n")
	}

	// Status line
	if m.focus == focusSelectTarget || m.focus == focusSelectControls {
		role := "target"
		if m.focus == focusSelectControls {
			role = "control"
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeGateStyle.Render(m.pendingGate))
		fmt.Fprintf(&sb, "  Select %s qubit: ", role)
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	} else {
		fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders the measurement histogram overlay after a run.
func (m Model) renderResultsPanel() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Run Results"))
	sb.WriteString("\n\n")

	if m.runErr != nil {
		fmt.Fprintf(&sb, "Error: %v\n", m.runErr)
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("Esc Close"))
		return resultsStyle.Render(sb.String())
	}
	if m.lastResult == nil {
		sb.WriteString(dimStyle.Render("No results yet — press r to run"))
		return resultsStyle.Render(sb.String())
	}

	res := m.lastResult
	if m.lastJob != nil {
		shortID := m.lastJob.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(&sb, "Job %s  │  %d shots  │  %s\n", shortID, res.Shots, res.Elapsed.Round(0))
	}
	fmt.Fprintf(&sb, "Noise: %s  │  Est. fidelity: %.4f\n\n", noisePresets[m.noiseIdx].Name, res.Fidelity)

	type entry struct {
		state string
		count int
	}
	entries := make([]entry, 0, len(res.Counts))
	maxCount := 0
	for state, count := range res.Counts {
		entries = append(entries, entry{state, count})
		if count > maxCount {
			maxCount = count
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].state < entries[j].state
	})
	if len(entries) > 12 {
		entries = entries[:12]
	}

	for _, e := range entries {
		barLen := 0
		if maxCount > 0 {
			barLen = e.count * barMaxW / maxCount
		}
		bar := strings.Repeat("█", barLen)
		style := barStyle
		if e.count == maxCount {
			style = barHitStyle
		}
		frac := float64(e.count) / float64(res.Shots)
		fmt.Fprintf(&sb, "|%s⟩ %s %d (%.1f%%)\n", e.state, style.Render(bar), e.count, frac*100)
	}

	// Per-qubit marginals from an ideal replay, next to the sampled counts.
	if r, err := m.circuit.Simulate(-1); err == nil {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("P(|1⟩) per qubit"))
		sb.WriteString("\n")
		for q, p := range r.MarginalProbabilities() {
			barLen := int(p * float64(barMaxW))
			fmt.Fprintf(&sb, "%s %s %.1f%%\n",
				qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
				barStyle.Render(strings.Repeat("▒", barLen)),
				p*100)
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("r Re-run  n Noise+rerun  Esc Close"))
	return resultsStyle.Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("r"))
	sb.WriteString(" Run\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  Bksp Delete  n Noise  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns so ANSI sequences in the
// background survive intact.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns [x, x+width(overlay)) of bgLine with
// the overlay content, skipping over ANSI escape sequences.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	isEscTerminator := func(r rune) bool {
		return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	// consumeEsc copies or skips one full escape sequence starting at i.
	consumeEsc := func(i int, out *strings.Builder) int {
		for i < len(runes) {
			r := runes[i]
			if out != nil {
				out.WriteRune(r)
			}
			i++
			if r != '\x1b' && r != '[' && isEscTerminator(r) {
				break
			}
		}
		return i
	}

	var prefix, suffix strings.Builder
	col, i := 0, 0

	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			i = consumeEsc(i, &prefix)
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			i = consumeEsc(i, nil)
		} else {
			skipped++
			i++
		}
	}

	for ; i < len(runes); i++ {
		suffix.WriteRune(runes[i])
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
		default:
			n++
		}
	}
	return n
}
