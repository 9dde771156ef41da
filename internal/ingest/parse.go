package ingest

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cubeworks/procure-cli/internal/model"
)

// Inputs bundles the three parsed input tables.
type Inputs struct {
	BOM     []model.BOMLine
	Offers  []model.Offer
	Program model.Program
}

// Load reads and parses the three input tables concurrently.
func Load(ctx context.Context, bomPath, suppliersPath, programPath string) (*Inputs, error) {
	var in Inputs

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := ReadTable(bomPath)
		if err != nil {
			return err
		}
		in.BOM, err = ParseBOM(t)
		return err
	})
	g.Go(func() error {
		t, err := ReadTable(suppliersPath)
		if err != nil {
			return err
		}
		in.Offers, err = ParseSuppliers(t)
		return err
	})
	g.Go(func() error {
		t, err := ReadTable(programPath)
		if err != nil {
			return err
		}
		in.Program, err = ParseProgram(t)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseBOM maps a BOM table onto BOM lines. Required columns:
// Component, Subsystem, Qty/Sat.
func ParseBOM(t *Table) ([]model.BOMLine, error) {
	compCol, err := t.Column("Component")
	if err != nil {
		return nil, err
	}
	subCol, err := t.Column("Subsystem")
	if err != nil {
		return nil, err
	}
	qtyCol, err := t.Column("Qty/Sat")
	if err != nil {
		return nil, err
	}

	lines := make([]model.BOMLine, 0, len(t.Rows))
	for i := range t.Rows {
		component := t.Cell(i, compCol)
		if component == "" {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: empty Component", t.Path, i+2)
		}

		qty, err := strconv.ParseFloat(t.Cell(i, qtyCol), 64)
		if err != nil {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: Qty/Sat %q is not numeric", t.Path, i+2, t.Cell(i, qtyCol))
		}
		if qty <= 0 {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: Qty/Sat must be positive, got %v", t.Path, i+2, qty)
		}

		lines = append(lines, model.BOMLine{
			Component: component,
			Subsystem: t.Cell(i, subCol),
			QtyPerSat: qty,
		})
	}

	if len(lines) == 0 {
		return nil, eris.Wrapf(ErrSchema, "ingest: %s has no BOM rows", t.Path)
	}
	return lines, nil
}

// ParseSuppliers maps a supplier table onto offers. Required columns:
// Components, Suppliers, Unit_Cost, Lead_Time_Days, MOQ. The
// (component, supplier) pair must be unique.
func ParseSuppliers(t *Table) ([]model.Offer, error) {
	compCol, err := t.Column("Components")
	if err != nil {
		return nil, err
	}
	supCol, err := t.Column("Suppliers")
	if err != nil {
		return nil, err
	}
	costCol, err := t.Column("Unit_Cost")
	if err != nil {
		return nil, err
	}
	leadCol, err := t.Column("Lead_Time_Days")
	if err != nil {
		return nil, err
	}
	moqCol, err := t.Column("MOQ")
	if err != nil {
		return nil, err
	}

	seen := make(map[model.OfferKey]struct{}, len(t.Rows))
	offers := make([]model.Offer, 0, len(t.Rows))
	for i := range t.Rows {
		component := t.Cell(i, compCol)
		supplier := t.Cell(i, supCol)
		if component == "" || supplier == "" {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: empty Components or Suppliers", t.Path, i+2)
		}

		cost, err := decimal.NewFromString(t.Cell(i, costCol))
		if err != nil {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: Unit_Cost %q is not numeric", t.Path, i+2, t.Cell(i, costCol))
		}
		if cost.IsNegative() {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: Unit_Cost must be non-negative, got %s", t.Path, i+2, cost)
		}

		lead, err := strconv.Atoi(t.Cell(i, leadCol))
		if err != nil || lead < 0 {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: Lead_Time_Days %q is not a non-negative integer", t.Path, i+2, t.Cell(i, leadCol))
		}

		moq, err := strconv.ParseFloat(t.Cell(i, moqCol), 64)
		if err != nil || moq < 0 {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: MOQ %q is not a non-negative number", t.Path, i+2, t.Cell(i, moqCol))
		}

		offer := model.Offer{
			Component:    component,
			Supplier:     supplier,
			UnitCost:     cost,
			LeadTimeDays: lead,
			MOQ:          moq,
		}
		if _, dup := seen[offer.Key()]; dup {
			return nil, eris.Wrapf(ErrSchema, "ingest: %s row %d: duplicate offer for (%s, %s)", t.Path, i+2, component, supplier)
		}
		seen[offer.Key()] = struct{}{}
		offers = append(offers, offer)
	}

	if len(offers) == 0 {
		return nil, eris.Wrapf(ErrSchema, "ingest: %s has no supplier rows", t.Path)
	}
	return offers, nil
}

// ParseProgram maps a program table onto program parameters. Required
// columns: Num_Satellites, Assembly_Start_Day; exactly one data row.
func ParseProgram(t *Table) (model.Program, error) {
	var prog model.Program

	satsCol, err := t.Column("Num_Satellites")
	if err != nil {
		return prog, err
	}
	dayCol, err := t.Column("Assembly_Start_Day")
	if err != nil {
		return prog, err
	}

	if len(t.Rows) != 1 {
		return prog, eris.Wrapf(ErrSchema, "ingest: %s must have exactly one data row, got %d", t.Path, len(t.Rows))
	}

	sats, err := strconv.Atoi(t.Cell(0, satsCol))
	if err != nil || sats <= 0 {
		return prog, eris.Wrapf(ErrSchema, "ingest: %s: Num_Satellites %q is not a positive integer", t.Path, t.Cell(0, satsCol))
	}

	day, err := strconv.Atoi(t.Cell(0, dayCol))
	if err != nil || day <= 0 {
		return prog, eris.Wrapf(ErrSchema, "ingest: %s: Assembly_Start_Day %q is not a positive integer", t.Path, t.Cell(0, dayCol))
	}

	prog.NumSatellites = sats
	prog.AssemblyStartDay = day
	return prog, nil
}
