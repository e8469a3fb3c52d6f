package main

import "time"

// Record represents one normalized order transaction line. Every parser
// output is reduced to this shape regardless of the source layout.
type Record struct {
	Date        time.Time `json:"date"`
	Department  string    `json:"department"`
	JAN         string    `json:"jan"`
	ProductName string    `json:"product_name"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Promotion   string    `json:"promotion"`
}

// Amount is the per-record order amount (quantity times the record's own
// unit price, not the aggregated max).
func (r Record) Amount() float64 {
	return r.Quantity * r.UnitPrice
}

// AggregatedItem is one summary row per distinct JAN code.
type AggregatedItem struct {
	Department    string  `json:"department"`
	JAN           string  `json:"jan"`
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
	Promotion     string  `json:"promotion"`
}

// Layout identifies which source layout a file was parsed as.
type Layout string

const (
	LayoutTransactional Layout = "transactional"
	LayoutMatrix        Layout = "matrix"
	LayoutUnknown       Layout = "unknown"
)

// Detection is the result of the encoding/layout probe.
type Detection struct {
	Encoding  string `json:"encoding"`
	HeaderRow int    `json:"header_row"`
	Layout    Layout `json:"layout"`
}

// Upload describes one uploaded file held in the session store.
type Upload struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	Layout     Layout    `json:"layout"`
	Encoding   string    `json:"encoding"`
	RowCount   int       `json:"row_count"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FilterRequest carries the filter predicates applied to the session's
// record set before aggregation or export. Nil slices mean "no filtering
// on this dimension"; an explicitly empty slice matches nothing.
type FilterRequest struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Departments []string `json:"departments"`
	Promotions  []string `json:"promotions"`
	Keywords    string   `json:"keywords"`
}

// PopExportRequest adds the 7-day calendar window start to the filters.
type PopExportRequest struct {
	FilterRequest
	WindowStart string `json:"window_start"`
}

// FilterOptions lists the selectable filter values for the current session.
type FilterOptions struct {
	MinDate     *string  `json:"min_date"`
	MaxDate     *string  `json:"max_date"`
	Departments []string `json:"departments"`
	Promotions  []string `json:"promotions"`
}

// SummaryMetrics are the headline numbers over the aggregated view.
type SummaryMetrics struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity float64 `json:"total_quantity"`
	ItemCount     int     `json:"item_count"`
}

// SummaryResponse is the aggregated view plus its metrics.
type SummaryResponse struct {
	Metrics SummaryMetrics   `json:"metrics"`
	Items   []AggregatedItem `json:"items"`
}
