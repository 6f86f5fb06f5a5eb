package pipeline

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"ordersift/internal"
)

// ExportResultsToXLSX flattens processing results into one row per
// verified item plus one row per missing identifier, ordered by
// filename then input order.
func ExportResultsToXLSX(results map[string]internal.FinalResult, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"email_filename", "sku", "name", "product_code", "found_in_catalog",
		"quantity_requested", "quantity_available", "minimum_order_quantity", "quantity_valid",
		"price", "line_total", "order_success", "order_total_price",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	filenames := make([]string, 0, len(results))
	for name := range results {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)

	row := 1
	for _, filename := range filenames {
		result := results[filename]
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}

		for _, item := range result.Validation.VerifiedProducts {
			row++
			set(1, filename)
			set(2, item.SKU)
			set(3, item.Name)
			set(4, item.ProductCode)
			set(5, item.FoundInCatalog)
			set(6, item.QuantityRequested)
			set(7, item.QuantityAvailable)
			set(8, item.MinimumOrderQuantity)
			set(9, item.QuantityValid)
			set(10, item.Price)
			set(11, item.Price*float64(item.QuantityRequested))
			set(12, result.Success)
			set(13, result.Validation.TotalPrice)
		}
		for _, missing := range result.Validation.MissingProducts {
			row++
			set(1, filename)
			set(2, missing)
			set(5, false)
			set(12, result.Success)
			set(13, result.Validation.TotalPrice)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
