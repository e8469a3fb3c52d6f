package main

import (
	"strings"
	"time"
)

// Matrix layout ("OrderCheckList"): two stacked header rows. The top row
// is a merged-cell export artifact — a date or section label appears once
// and the cells under the same section are empty — and the bottom row
// carries per-column field labels. Fixed columns (JAN code, department,
// product name) have an empty bottom label; their identity is the top
// label.
const (
	labelWeeklyTotal = "週合計"
	colJANCode       = "JANコード"
	subColQuantity   = "数量"
	subColPrice      = "売価"
	subColPromo      = "販促"
)

type matrixColumn struct {
	top    string
	bottom string
}

// resolveMatrixHeader forward-fills the sparse top header in a single
// left-to-right scan. A 週合計 label stays on its own column but is never
// propagated into the columns that follow it.
func resolveMatrixHeader(top, bottom []string) []matrixColumn {
	width := len(top)
	if len(bottom) > width {
		width = len(bottom)
	}
	cellAt := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	cols := make([]matrixColumn, width)
	lastTop := ""
	for i := 0; i < width; i++ {
		t := cellAt(top, i)
		if t != "" && !strings.Contains(t, labelWeeklyTotal) {
			lastTop = t
		}
		resolved := t
		if t == "" {
			resolved = lastTop
		}
		cols[i] = matrixColumn{top: resolved, bottom: cellAt(bottom, i)}
	}
	return cols
}

// parseMatrix converts a two-header-row grid into canonical records: one
// record per (row, date group) pair with a nonzero quantity. A quantity
// of exactly 0 — or a missing/unparseable one — produces no record;
// fractional quantities do. Rows without a JAN code are skipped, as are
// date groups whose label does not parse as a date.
func parseMatrix(rows [][]string, headerRow int) []Record {
	if headerRow+1 >= len(rows) {
		return make([]Record, 0)
	}

	cols := resolveMatrixHeader(rows[headerRow], rows[headerRow+1])

	// Partition into fixed columns and date groups, preserving column
	// order for the groups.
	fixed := make(map[string]int)
	var dateLabels []string
	dateGroups := make(map[string]map[string]int)
	for i, c := range cols {
		if c.bottom == "" {
			if c.top != "" {
				if _, seen := fixed[c.top]; !seen {
					fixed[c.top] = i
				}
			}
			continue
		}
		if c.top == "" || strings.Contains(c.top, labelWeeklyTotal) {
			continue
		}
		group, seen := dateGroups[c.top]
		if !seen {
			group = make(map[string]int)
			dateGroups[c.top] = group
			dateLabels = append(dateLabels, c.top)
		}
		if _, seen := group[c.bottom]; !seen {
			group[c.bottom] = i
		}
	}

	fixedValue := func(row []string, name string) string {
		i, ok := fixed[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	subValue := func(row []string, group map[string]int, name string) string {
		i, ok := group[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	defaultYear := time.Now().Year()
	records := make([]Record, 0)
	for _, row := range rows[headerRow+2:] {
		jan := strings.TrimSpace(fixedValue(row, colJANCode))
		if jan == "" {
			continue
		}
		dept := cleanDepartment(fixedValue(row, colDepartment))
		name := fixedValue(row, colProductName)

		for _, label := range dateLabels {
			group := dateGroups[label]
			qty := coerceNumber(subValue(row, group, subColQuantity))
			if qty == 0 {
				continue
			}
			date := parseDateToken(label, defaultYear)
			if date.IsZero() {
				continue
			}
			records = append(records, Record{
				Date:        date,
				Department:  dept,
				JAN:         cleanJAN(jan),
				ProductName: name,
				Quantity:    qty,
				UnitPrice:   coerceNumber(subValue(row, group, subColPrice)),
				Promotion:   cleanPromotion(subValue(row, group, subColPromo)),
			})
		}
	}
	return records
}
