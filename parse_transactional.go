package main

import "strings"

// Transactional layout ("ODR_RES"): one header row, one transaction per
// line. Column names as they appear in the source exports.
const (
	colDeliveryDate = "納品日"
	colDepartment   = "部門"
	colProductCode  = "商品コード"
	colProductName  = "商品名"
	colOrderQty     = "発注数量"
	colUnitPrice    = "売単価"
	colOrderClass   = "発注区分"
)

// requiredColumns is the hard contract: a transactional file missing any
// of these is rejected outright rather than best-effort guessed.
var requiredColumns = []string{colDeliveryDate, colDepartment, colProductCode}

// parseTransactional converts a single-header-row grid into canonical
// records. Returns nil when the required columns are absent — callers
// distinguish that contract failure from an empty (but valid) result.
// Rows whose delivery date cannot be parsed are dropped; numeric fields
// degrade to 0 and the promotion field to "".
func parseTransactional(rows [][]string, headerRow int) []Record {
	if headerRow >= len(rows) {
		return nil
	}

	index := make(map[string]int, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		name := strings.TrimSpace(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil
		}
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]Record, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		date := parseDateToken(cell(row, colDeliveryDate), 0)
		if date.IsZero() {
			continue
		}
		records = append(records, Record{
			Date:        date,
			Department:  cleanDepartment(cell(row, colDepartment)),
			JAN:         cleanJAN(cell(row, colProductCode)),
			ProductName: cell(row, colProductName),
			Quantity:    coerceNumber(cell(row, colOrderQty)),
			UnitPrice:   coerceNumber(cell(row, colUnitPrice)),
			Promotion:   cleanPromotion(cell(row, colOrderClass)),
		})
	}
	return records
}
