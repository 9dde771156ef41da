// Package milp builds the mixed-integer linear program for the
// procurement allocation problem: one continuous order-quantity column
// and one binary activation column per feasible offer, a cost-minimizing
// objective, demand rows, and MOQ linearization rows.
package milp

import "math"

// VarType distinguishes continuous from binary columns.
type VarType int

const (
	Continuous VarType = iota
	Binary
)

// Variable declares one model column.
type Variable struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64 // +Inf when unbounded above
}

// Term is one coefficient in a constraint row.
type Term struct {
	Col  int
	Coef float64
}

// Constraint is a range row: Lower <= sum(terms) <= Upper, with ±Inf
// marking an open end.
type Constraint struct {
	Name  string
	Terms []Term
	Lower float64
	Upper float64
}

// Model is the complete program handed to the solver adapter. Costs is
// the minimize objective, one entry per column.
type Model struct {
	Cols  []Variable
	Costs []float64
	Rows  []Constraint
}

// Dense expands a constraint's sparse terms into a dense coefficient
// row over all columns.
func (m *Model) Dense(c Constraint) []float64 {
	row := make([]float64, len(m.Cols))
	for _, t := range c.Terms {
		row[t.Col] = t.Coef
	}
	return row
}

// Inf is shorthand for an open constraint or variable bound.
func Inf() float64 { return math.Inf(1) }
