package excel

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestReadTable(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Codigo Alumno", "Nombre Alumno", "Promedio"},
		{"20201578", "Carlos Perez", "3.4"},
		{"20201579", "  Maria Lopez  ", "2,8"},
	})

	table, err := ReadTable(r)
	if err != nil {
		t.Fatalf("ReadTable returned error: %v", err)
	}

	if table.RowCount() != 2 {
		t.Fatalf("RowCount = %d, want 2", table.RowCount())
	}
	if got := table.Cell(0, "Codigo Alumno"); got != "20201578" {
		t.Errorf("Cell(0, Codigo Alumno) = %q", got)
	}
	if got := table.Cell(1, "Nombre Alumno"); got != "Maria Lopez" {
		t.Errorf("Cell(1, Nombre Alumno) = %q, want trimmed value", got)
	}
	if got := table.Cell(0, "No Such Column"); got != "" {
		t.Errorf("Cell with unknown column = %q, want empty", got)
	}
	if got := table.Cell(5, "Promedio"); got != "" {
		t.Errorf("Cell with out-of-range row = %q, want empty", got)
	}
}

func TestMissingColumns(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Codigo Alumno", "Nombre Alumno"},
	})

	table, err := ReadTable(r)
	if err != nil {
		t.Fatalf("ReadTable returned error: %v", err)
	}

	missing := table.MissingColumns([]string{"Codigo Alumno", "Promedio", "Documento"})
	if len(missing) != 2 || missing[0] != "Promedio" || missing[1] != "Documento" {
		t.Errorf("MissingColumns = %v, want [Promedio Documento]", missing)
	}
}

func TestReadTableShortRows(t *testing.T) {
	r := buildWorkbook(t, [][]interface{}{
		{"Codigo Alumno", "Nombre Alumno", "Promedio"},
		{"20201578"},
	})

	table, err := ReadTable(r)
	if err != nil {
		t.Fatalf("ReadTable returned error: %v", err)
	}

	if got := table.Cell(0, "Promedio"); got != "" {
		t.Errorf("Cell on a short row = %q, want empty", got)
	}
}

func TestReadTableNotAWorkbook(t *testing.T) {
	if _, err := ReadTable(bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Error("ReadTable accepted a non-xlsx stream")
	}
}
