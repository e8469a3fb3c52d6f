package main

import (
	"bytes"
	"encoding/csv"
	"sort"
	"time"
)

// Pivot export: the wide, date-indexed CSV.
//
// The grouping key here is deliberately finer than the summary's
// JAN-only key — unit price and promotion participate, so an item whose
// price changed mid-range produces one row per price. That preserves
// price history and must not be unified with the summary grouping.

type pivotKey struct {
	Department  string
	JAN         string
	ProductName string
	UnitPrice   float64
	Promotion   string
}

func (k pivotKey) less(o pivotKey) bool {
	if k.Department != o.Department {
		return k.Department < o.Department
	}
	if k.JAN != o.JAN {
		return k.JAN < o.JAN
	}
	if k.ProductName != o.ProductName {
		return k.ProductName < o.ProductName
	}
	if k.UnitPrice != o.UnitPrice {
		return k.UnitPrice < o.UnitPrice
	}
	return k.Promotion < o.Promotion
}

// buildPivotCSV projects filtered records into the wide export: identity
// columns, one column per date actually present (ascending, no calendar
// padding), then total quantity, total amount (total quantity times the
// group's unit price) and promotion. The output carries a UTF-8 BOM for
// spreadsheet tooling, and the JAN column a leading apostrophe so the
// code survives reopening as text. Empty input yields nil.
func buildPivotCSV(records []Record) []byte {
	if len(records) == 0 {
		return nil
	}

	type group struct {
		byDate map[time.Time]float64
	}
	groups := make(map[pivotKey]*group)
	dateSet := make(map[time.Time]bool)
	for _, r := range records {
		key := pivotKey{r.Department, r.JAN, r.ProductName, r.UnitPrice, r.Promotion}
		g, ok := groups[key]
		if !ok {
			g = &group{byDate: make(map[time.Time]float64)}
			groups[key] = g
		}
		g.byDate[r.Date] += r.Quantity
		dateSet[r.Date] = true
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	keys := make([]pivotKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	header := []string{"部門", "JAN", "商品名", "単価"}
	for _, d := range dates {
		header = append(header, d.Format("2006/01/02"))
	}
	header = append(header, "合計数量", "合計金額", "販促")
	w.Write(header)

	for _, key := range keys {
		g := groups[key]
		row := []string{key.Department, "'" + key.JAN, key.ProductName, formatNumber(key.UnitPrice)}
		total := 0.0
		for _, d := range dates {
			qty := g.byDate[d]
			total += qty
			row = append(row, formatNumber(qty))
		}
		row = append(row, formatNumber(total), formatNumber(total*key.UnitPrice), key.Promotion)
		w.Write(row)
	}

	w.Flush()
	return buf.Bytes()
}
