package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadFile_CSV(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "order_id,item_sku,price\n1,ABC123,10\n,,\n2,XYZ789\n")

	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ds.SourceFile != "input.csv" {
		t.Fatalf("unexpected source file: %q", ds.SourceFile)
	}
	if len(ds.Columns) != 3 || ds.Columns[1] != "item_sku" {
		t.Fatalf("unexpected columns: %v", ds.Columns)
	}
	// 全空白行被跳过
	if len(ds.Rows) != 2 {
		t.Fatalf("want 2 rows got %d", len(ds.Rows))
	}
	// 短行按空单元格补齐
	if ds.Rows[1]["price"] != "" {
		t.Fatalf("short row not padded: %q", ds.Rows[1]["price"])
	}
	if ds.Rows[0]["item_sku"] != "ABC123" {
		t.Fatalf("unexpected cell: %q", ds.Rows[0]["item_sku"])
	}
}

func TestLoadFile_XLSX(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "input.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"order_id", "item_sku", "price"},
		{"1", "ABC123", "10"},
		{"2", "DEF456", "20"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Columns) != 3 || len(ds.Rows) != 2 {
		t.Fatalf("unexpected shape: %v rows=%d", ds.Columns, len(ds.Rows))
	}
	if ds.Rows[1]["item_sku"] != "DEF456" {
		t.Fatalf("unexpected cell: %q", ds.Rows[1]["item_sku"])
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("sales.pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat got %v", err)
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "")
	if _, err := LoadFile(path); !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("want ErrEmptyDataset got %v", err)
	}
}

func TestLoadFile_HeaderOnly(t *testing.T) {
	t.Parallel()

	path := writeTempCSV(t, "order_id,item_sku,price\n")
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Fatalf("want 0 rows got %d", len(ds.Rows))
	}
}
