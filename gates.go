package main

import (
	"math"
	"math/cmplx"
)

// Canonical gate names follow the qelib1 convention so that circuits exchange
// cleanly with OpenQASM tooling: h x y z s sdg t tdg id rx ry rz p u3 cx cz
// swap cp ccx barrier measure.

const invSqrt2 = 1 / math.Sqrt2

// GateH returns the Hadamard matrix.
func GateH() *Matrix {
	f := complex(invSqrt2, 0)
	return MatrixFrom(2, 2,
		f, f,
		f, -f,
	)
}

// GateX returns the Pauli-X (NOT) matrix.
func GateX() *Matrix {
	return MatrixFrom(2, 2,
		0, 1,
		1, 0,
	)
}

// GateY returns the Pauli-Y matrix.
func GateY() *Matrix {
	return MatrixFrom(2, 2,
		0, -1i,
		1i, 0,
	)
}

// GateZ returns the Pauli-Z matrix.
func GateZ() *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, -1,
	)
}

// GateS returns the S phase gate (√Z).
func GateS() *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, 1i,
	)
}

// GateSdg returns S†.
func GateSdg() *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, -1i,
	)
}

// GateT returns the T gate (π/8 phase).
func GateT() *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, cmplx.Exp(complex(0, math.Pi/4)),
	)
}

// GateTdg returns T†.
func GateTdg() *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, cmplx.Exp(complex(0, -math.Pi/4)),
	)
}

// GateID returns the 2×2 identity.
func GateID() *Matrix {
	return IdentityMatrix(2)
}

// GateRX returns the X-axis rotation by theta.
func GateRX(theta float64) *Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return MatrixFrom(2, 2,
		c, js,
		js, c,
	)
}

// GateRY returns the Y-axis rotation by theta.
func GateRY(theta float64) *Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return MatrixFrom(2, 2,
		c, -s,
		s, c,
	)
}

// GateRZ returns the Z-axis rotation by theta.
func GateRZ(theta float64) *Matrix {
	return MatrixFrom(2, 2,
		cmplx.Exp(complex(0, -theta/2)), 0,
		0, cmplx.Exp(complex(0, theta/2)),
	)
}

// GateP returns the phase-shift gate diag(1, e^{iλ}).
func GateP(lambda float64) *Matrix {
	return MatrixFrom(2, 2,
		1, 0,
		0, cmplx.Exp(complex(0, lambda)),
	)
}

// GateU3 returns the generalized single-qubit unitary U3(θ, φ, λ).
func GateU3(theta, phi, lambda float64) *Matrix {
	c := math.Cos(theta / 2)
	s := math.Sin(theta / 2)
	return MatrixFrom(2, 2,
		complex(c, 0), -cmplx.Exp(complex(0, lambda))*complex(s, 0),
		cmplx.Exp(complex(0, phi))*complex(s, 0), cmplx.Exp(complex(0, phi+lambda))*complex(c, 0),
	)
}

// GateCNOT returns the fixed 4×4 CNOT matrix (control = high bit). Only used
// by reference checks; the register applies CNOT as an amplitude permutation.
func GateCNOT() *Matrix {
	return MatrixFrom(4, 4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	)
}

// singleQubitGateMatrix resolves a canonical gate name plus parameters to its
// 2×2 matrix. Returns nil for names that are not single-qubit unitaries.
func singleQubitGateMatrix(name string, params []float64) *Matrix {
	switch name {
	case "h":
		return GateH()
	case "x":
		return GateX()
	case "y":
		return GateY()
	case "z":
		return GateZ()
	case "s":
		return GateS()
	case "sdg":
		return GateSdg()
	case "t":
		return GateT()
	case "tdg":
		return GateTdg()
	case "id":
		return GateID()
	case "rx":
		if len(params) < 1 {
			return nil
		}
		return GateRX(params[0])
	case "ry":
		if len(params) < 1 {
			return nil
		}
		return GateRY(params[0])
	case "rz":
		if len(params) < 1 {
			return nil
		}
		return GateRZ(params[0])
	case "p":
		if len(params) < 1 {
			return nil
		}
		return GateP(params[0])
	case "u3":
		if len(params) < 3 {
			return nil
		}
		return GateU3(params[0], params[1], params[2])
	}
	return nil
}

// gateShape describes the expected qubit and parameter arity of a canonical
// gate name. Serialization validates against this table.
type gateShape struct {
	qubits int // -1 means "any number" (barrier)
	params int
}

var gateShapes = map[string]gateShape{
	"h":       {1, 0},
	"x":       {1, 0},
	"y":       {1, 0},
	"z":       {1, 0},
	"s":       {1, 0},
	"sdg":     {1, 0},
	"t":       {1, 0},
	"tdg":     {1, 0},
	"id":      {1, 0},
	"rx":      {1, 1},
	"ry":      {1, 1},
	"rz":      {1, 1},
	"p":       {1, 1},
	"u3":      {1, 3},
	"cx":      {2, 0},
	"cz":      {2, 0},
	"swap":    {2, 0},
	"cp":      {2, 1},
	"ccx":     {3, 0},
	"barrier": {-1, 0},
	"measure": {1, 0},
}
