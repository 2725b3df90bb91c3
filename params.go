package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches one rotation/phase parameter inside QASM text:
// plain numbers, pi, and pi expressions like "pi/2", "3*pi/4", "-2*pi/3".
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex matches: pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -pi/2.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses a single parameter expression. Plain numbers parse
// directly; anything else must be a pi expression. Returns false on failure.
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	matches := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return 0, false
		}
	}

	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, true
}

// piForms lists the pi fractions formatParam recognizes, most specific first.
var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// formatParam renders a parameter value, preferring pi notation when the
// value is within 1e-10 of a recognized fraction.
func formatParam(val float64) string {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return fmt.Sprintf("%g", val)
}

// parseParamList parses a comma-separated parameter string. Returns nil if
// any part fails to parse.
func parseParamList(input string) []float64 {
	var params []float64
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		val, ok := parseParamExpr(part)
		if !ok {
			return nil
		}
		params = append(params, val)
	}
	return params
}
