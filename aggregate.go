package main

import (
	"sort"
	"time"
)

// Aggregation over the canonical record set. Pure functions, recomputed
// per call; nothing here holds state.

// aggregate groups records by JAN code. Department, product name and
// promotion take the first-seen value in record order; unit price takes
// the maximum observed, which protects against zero-filled rows; quantity
// and amount are summed, amount per source record (quantity times that
// record's own price). Items are ordered by total quantity, descending,
// ties keeping first-seen order.
func aggregate(records []Record) []AggregatedItem {
	index := make(map[string]int)
	items := make([]AggregatedItem, 0)

	for _, r := range records {
		i, seen := index[r.JAN]
		if !seen {
			i = len(items)
			index[r.JAN] = i
			items = append(items, AggregatedItem{
				Department:  r.Department,
				JAN:         r.JAN,
				ProductName: r.ProductName,
				UnitPrice:   r.UnitPrice,
				Promotion:   r.Promotion,
			})
		}
		item := &items[i]
		if r.UnitPrice > item.UnitPrice {
			item.UnitPrice = r.UnitPrice
		}
		item.TotalQuantity += r.Quantity
		item.TotalAmount += r.Amount()
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].TotalQuantity > items[b].TotalQuantity
	})
	return items
}

// summaryMetrics computes the headline numbers over an aggregated view.
func summaryMetrics(items []AggregatedItem) SummaryMetrics {
	var m SummaryMetrics
	m.ItemCount = len(items)
	for _, item := range items {
		m.TotalAmount += item.TotalAmount
		m.TotalQuantity += item.TotalQuantity
	}
	return m
}

// dailyQuantities sums quantity per (JAN, date). The renderer reads this
// map to fill the 7-day calendar strip; it is independent of the pivot
// grouping.
func dailyQuantities(records []Record) map[string]map[time.Time]float64 {
	daily := make(map[string]map[time.Time]float64)
	for _, r := range records {
		byDate, ok := daily[r.JAN]
		if !ok {
			byDate = make(map[time.Time]float64)
			daily[r.JAN] = byDate
		}
		byDate[r.Date] += r.Quantity
	}
	return daily
}

// dateBounds returns the min and max record dates, or zero times for an
// empty set.
func dateBounds(records []Record) (time.Time, time.Time) {
	var min, max time.Time
	for _, r := range records {
		if min.IsZero() || r.Date.Before(min) {
			min = r.Date
		}
		if max.IsZero() || r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
