package ingest

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	goodBOM       = "Component,Subsystem,Qty/Sat\nPCB,Avionics,2\nBattery,Power,1\n"
	goodSuppliers = "Components,Suppliers,Unit_Cost,Lead_Time_Days,MOQ\nPCB,CircuitWorks,10,5,4\nBattery,VoltaCell,20.50,7,10\n"
	goodProgram   = "Num_Satellites,Assembly_Start_Day\n3,10\n"
)

func TestLoad(t *testing.T) {
	t.Parallel()
	bom := writeCSV(t, "BOM.csv", goodBOM)
	sup := writeCSV(t, "Suppliers.csv", goodSuppliers)
	prog := writeCSV(t, "Program.csv", goodProgram)

	in, err := Load(context.Background(), bom, sup, prog)
	require.NoError(t, err)

	assert.Len(t, in.BOM, 2)
	assert.Len(t, in.Offers, 2)
	assert.Equal(t, 3, in.Program.NumSatellites)
	assert.Equal(t, 10, in.Program.AssemblyStartDay)
}

func TestLoad_PropagatesSchemaError(t *testing.T) {
	t.Parallel()
	bom := writeCSV(t, "BOM.csv", "Component,Subsystem\nPCB,Avionics\n") // no Qty/Sat
	sup := writeCSV(t, "Suppliers.csv", goodSuppliers)
	prog := writeCSV(t, "Program.csv", goodProgram)

	_, err := Load(context.Background(), bom, sup, prog)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrSchema))
}

func TestParseBOM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "valid", content: goodBOM},
		{name: "missing column", content: "Component,Subsystem\nPCB,Avionics\n", wantErr: "Qty/Sat"},
		{name: "non-numeric qty", content: "Component,Subsystem,Qty/Sat\nPCB,Avionics,two\n", wantErr: "not numeric"},
		{name: "zero qty", content: "Component,Subsystem,Qty/Sat\nPCB,Avionics,0\n", wantErr: "must be positive"},
		{name: "empty component", content: "Component,Subsystem,Qty/Sat\n,Avionics,2\n", wantErr: "empty Component"},
		{name: "header only", content: "Component,Subsystem,Qty/Sat\n", wantErr: "no BOM rows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl, err := ReadTable(writeCSV(t, "bom.csv", tt.content))
			require.NoError(t, err)

			lines, err := ParseBOM(tbl)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrSchema))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, lines, 2)
			assert.Equal(t, "PCB", lines[0].Component)
			assert.Equal(t, "Avionics", lines[0].Subsystem)
			assert.InDelta(t, 2.0, lines[0].QtyPerSat, 1e-12)
		})
	}
}

func TestParseSuppliers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "valid", content: goodSuppliers},
		{name: "missing column", content: "Components,Suppliers,Unit_Cost,MOQ\nPCB,A,1,1\n", wantErr: "Lead_Time_Days"},
		{name: "negative cost", content: "Components,Suppliers,Unit_Cost,Lead_Time_Days,MOQ\nPCB,A,-1,5,1\n", wantErr: "non-negative"},
		{name: "bad lead time", content: "Components,Suppliers,Unit_Cost,Lead_Time_Days,MOQ\nPCB,A,1,-2,1\n", wantErr: "Lead_Time_Days"},
		{name: "bad moq", content: "Components,Suppliers,Unit_Cost,Lead_Time_Days,MOQ\nPCB,A,1,5,x\n", wantErr: "MOQ"},
		{
			name:    "duplicate pair",
			content: "Components,Suppliers,Unit_Cost,Lead_Time_Days,MOQ\nPCB,A,1,5,1\nPCB,A,2,6,2\n",
			wantErr: "duplicate offer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl, err := ReadTable(writeCSV(t, "sup.csv", tt.content))
			require.NoError(t, err)

			offers, err := ParseSuppliers(tbl)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrSchema))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, offers, 2)
			assert.Equal(t, "CircuitWorks", offers[0].Supplier)
			assert.True(t, offers[1].UnitCost.Equal(decimal.RequireFromString("20.50")))
			assert.Equal(t, 7, offers[1].LeadTimeDays)
			assert.InDelta(t, 10.0, offers[1].MOQ, 1e-12)
		})
	}
}

func TestParseProgram(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "valid", content: goodProgram},
		{name: "missing column", content: "Num_Satellites\n3\n", wantErr: "Assembly_Start_Day"},
		{name: "two rows", content: "Num_Satellites,Assembly_Start_Day\n3,10\n4,12\n", wantErr: "exactly one data row"},
		{name: "no rows", content: "Num_Satellites,Assembly_Start_Day\n", wantErr: "exactly one data row"},
		{name: "zero satellites", content: "Num_Satellites,Assembly_Start_Day\n0,10\n", wantErr: "Num_Satellites"},
		{name: "bad day", content: "Num_Satellites,Assembly_Start_Day\n3,-1\n", wantErr: "Assembly_Start_Day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl, err := ReadTable(writeCSV(t, "prog.csv", tt.content))
			require.NoError(t, err)

			prog, err := ParseProgram(tbl)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, eris.Is(err, ErrSchema))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, prog.NumSatellites)
			assert.Equal(t, 10, prog.AssemblyStartDay)
		})
	}
}
