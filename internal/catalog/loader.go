package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ordersift/internal"
	"ordersift/internal/util"
)

// LoadError reports a missing or malformed catalog source. Fatal at
// startup, never raised per request.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load catalog %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a tabular catalog (CSV or XLSX by extension) and builds
// the read-only index. The code column is the first header containing
// "code" case-insensitively, else the first column.
func Load(path string) (*Index, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(rows) < 1 || len(rows[0]) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("no header row")}
	}

	entries, err := parseRows(rows)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return BuildIndex(entries), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	return f.GetRows(sheet)
}

func parseRows(rows [][]string) ([]internal.CatalogEntry, error) {
	headers := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
	}

	codeIdx := findHeaderIndex(headers, []string{"code"})
	if codeIdx < 0 {
		codeIdx = 0
	}
	nameIdx := findHeaderIndex(headers, []string{"name", "product"})
	priceIdx := findHeaderIndex(headers, []string{"price"})
	stockIdx := findHeaderIndex(headers, []string{"stock", "available"})
	moqIdx := findHeaderIndex(headers, []string{"min"})
	descIdx := findHeaderIndex(headers, []string{"desc"})

	entries := make([]internal.CatalogEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code := pickCell(row, codeIdx)
		if code == "" {
			continue
		}
		entries = append(entries, internal.CatalogEntry{
			Code:             code,
			Name:             pickCell(row, nameIdx),
			Price:            parseFloat(pickCell(row, priceIdx)),
			AvailableInStock: parseInt(pickCell(row, stockIdx)),
			MinOrderQuantity: parseInt(pickCell(row, moqIdx)),
			Description:      pickCell(row, descIdx),
		})
	}
	return entries, nil
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(value string) float64 {
	value = strings.TrimPrefix(util.NormalizeWhitespace(value), "$")
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

func parseInt(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
