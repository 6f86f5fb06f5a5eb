package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Product_Code,Product_Name,Price,Available_in_Stock,Min_Order_Quantity,Description
A100,Steel Bracket,10.00,5,2,Galvanized steel bracket
B200,Copper Wire,4.50,120,10,2mm copper wire spool
C300,Hex Bolt,0.25,1000,50,M8 hex bolt
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	idx, err := Load(writeCatalog(t, sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if idx.Len() != 3 {
		t.Fatalf("len=%d", idx.Len())
	}

	entry, ok := idx.LookupByCode("A100")
	if !ok {
		t.Fatal("A100 not found")
	}
	if entry.Name != "Steel Bracket" || entry.Price != 10.00 || entry.AvailableInStock != 5 || entry.MinOrderQuantity != 2 {
		t.Fatalf("entry=%+v", entry)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err=%T", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	if _, err := Load(writeCatalog(t, "")); err == nil {
		t.Fatal("expected error for headerless catalog")
	}
}

func TestLoadCodeColumnFallback(t *testing.T) {
	// No header contains "code": first column is the key.
	csv := "Id,Product_Name,Price\nX1,Widget,2.00\n"
	idx, err := Load(writeCatalog(t, csv))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := idx.LookupByCode("X1"); !ok {
		t.Fatal("X1 not found via first-column fallback")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Product_Code", "Product_Name", "Price", "Available_in_Stock", "Min_Order_Quantity", "Description"},
		{"A100", "Steel Bracket", 10.00, 5, 2, "Galvanized steel bracket"},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	idx, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := idx.LookupByCode("a100")
	if !ok {
		t.Fatal("code lookup should be case-insensitive")
	}
	if entry.Price != 10.00 {
		t.Fatalf("price=%v", entry.Price)
	}
}
