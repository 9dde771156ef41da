// Package model holds the domain types shared across pipeline stages.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine is one bill-of-materials row: a component and how many of it
// each satellite needs.
type BOMLine struct {
	Component string  `json:"component"`
	Subsystem string  `json:"subsystem"`
	QtyPerSat float64 `json:"qty_per_sat"`
}

// Offer is a supplier's terms for a single component. The
// (Component, Supplier) pair is unique within a supplier table.
type Offer struct {
	Component    string          `json:"component"`
	Supplier     string          `json:"supplier"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LeadTimeDays int             `json:"lead_time_days"`
	MOQ          float64         `json:"moq"`
}

// Key returns the identity of the offer within a supplier table.
func (o Offer) Key() OfferKey {
	return OfferKey{Component: o.Component, Supplier: o.Supplier}
}

// OfferKey identifies an offer by its (component, supplier) pair.
type OfferKey struct {
	Component string `json:"component"`
	Supplier  string `json:"supplier"`
}

// Program holds the program-level parameters from the Program table.
type Program struct {
	NumSatellites    int `json:"num_satellites"`
	AssemblyStartDay int `json:"assembly_start_day"`
}

// Demand maps a component to its total program demand
// (qty per satellite times satellite count).
type Demand map[string]float64

// PlanRow is one non-zero allocation in the procurement plan.
// Rows are created once after solving and never mutated.
type PlanRow struct {
	Component string          `json:"component"`
	Supplier  string          `json:"supplier"`
	OrderQty  float64         `json:"order_qty"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Cost      decimal.Decimal `json:"cost"`
}

// RunStatus is the lifecycle state of a persisted solve run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunInputs records where a run's inputs came from and the effective
// parameters, for later inspection via `runs show`.
type RunInputs struct {
	BOMPath          string  `json:"bom_path"`
	SuppliersPath    string  `json:"suppliers_path"`
	ProgramPath      string  `json:"program_path"`
	NumSatellites    int     `json:"num_satellites"`
	AssemblyStartDay int     `json:"assembly_start_day"`
	BigM             float64 `json:"big_m"`
}

// RunResult is the outcome of a successful solve.
type RunResult struct {
	SolveStatus string    `json:"solve_status"`
	Objective   float64   `json:"objective"`
	TotalCost   string    `json:"total_cost"`
	Rows        []PlanRow `json:"rows"`
}

// Run is one persisted solve invocation.
type Run struct {
	ID        string     `json:"id"`
	Inputs    RunInputs  `json:"inputs"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
