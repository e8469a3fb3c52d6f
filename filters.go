package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Record set filtering
//
// Filters arrive from the caller (the UI layer is external); the engine
// only applies them. All four dimensions are conjunctive; keywords are
// disjunctive among themselves.

// keywordSplitter splits free-text search input on commas, newlines and
// both ASCII and ideographic whitespace.
var keywordSplitter = regexp.MustCompile(`[,\s\x{3000}]+`)

// Filter is the resolved form of a FilterRequest.
type Filter struct {
	Start       time.Time       // zero = unbounded
	End         time.Time       // zero = unbounded
	Departments map[string]bool // nil = all departments
	Promotions  map[string]bool // nil = all promotions
	Keywords    []string
}

// filterFromRequest validates and resolves a FilterRequest. Date bounds
// use YYYY-MM-DD. A nil slice means no filtering on that dimension; an
// explicitly empty slice matches nothing (a cleared multi-select).
func filterFromRequest(req FilterRequest) (Filter, error) {
	var f Filter

	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid start_date %q", req.StartDate)
		}
		f.Start = t
	}
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid end_date %q", req.EndDate)
		}
		f.End = t
	}

	if req.Departments != nil {
		f.Departments = make(map[string]bool, len(req.Departments))
		for _, d := range req.Departments {
			f.Departments[d] = true
		}
	}
	if req.Promotions != nil {
		f.Promotions = make(map[string]bool, len(req.Promotions))
		for _, p := range req.Promotions {
			f.Promotions[p] = true
		}
	}

	for _, k := range keywordSplitter.Split(req.Keywords, -1) {
		if k != "" {
			f.Keywords = append(f.Keywords, k)
		}
	}

	return f, nil
}

// matches reports whether a record passes every filter dimension.
func (f Filter) matches(r Record) bool {
	if !f.Start.IsZero() && r.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && r.Date.After(f.End) {
		return false
	}
	if f.Departments != nil && !f.Departments[r.Department] {
		return false
	}
	if f.Promotions != nil && !f.Promotions[r.Promotion] {
		return false
	}
	if len(f.Keywords) > 0 && !f.matchesKeyword(r) {
		return false
	}
	return true
}

// matchesKeyword is satisfied by any single keyword hitting the JAN code
// or the product name as a substring.
func (f Filter) matchesKeyword(r Record) bool {
	for _, k := range f.Keywords {
		if strings.Contains(r.JAN, k) || strings.Contains(r.ProductName, k) {
			return true
		}
	}
	return false
}

// applyFilter returns the records passing the filter, input order kept.
func applyFilter(records []Record, f Filter) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
