package main

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// Summary and filter-option handler functions

// @Summary Get filter options
// @Description Get the selectable filter values over the whole session: date bounds, departments and promotion labels. The empty promotion label is listed when records without a promotion exist.
// @Tags summary
// @Produce json
// @Success 200 {object} FilterOptions "Available filter values"
// @Router /api/filters [get]
func getFilterOptions(c *gin.Context) {
	records := store.allRecords()

	options := FilterOptions{
		Departments: make([]string, 0),
		Promotions:  make([]string, 0),
	}

	minDate, maxDate := dateBounds(records)
	if !minDate.IsZero() {
		lo := minDate.Format("2006-01-02")
		hi := maxDate.Format("2006-01-02")
		options.MinDate = &lo
		options.MaxDate = &hi
	}

	deptSet := make(map[string]bool)
	promoSet := make(map[string]bool)
	hasBlankPromo := false
	for _, r := range records {
		deptSet[r.Department] = true
		if r.Promotion == "" {
			hasBlankPromo = true
			continue
		}
		promoSet[r.Promotion] = true
	}
	for d := range deptSet {
		options.Departments = append(options.Departments, d)
	}
	for p := range promoSet {
		options.Promotions = append(options.Promotions, p)
	}
	sort.Strings(options.Departments)
	sort.Strings(options.Promotions)
	if hasBlankPromo {
		options.Promotions = append(options.Promotions, "")
	}

	c.JSON(http.StatusOK, options)
}

// @Summary Get aggregated summary
// @Description Apply the given filters to the session's records and return the per-item aggregation with headline metrics
// @Tags summary
// @Accept json
// @Produce json
// @Param filters body FilterRequest true "Filter predicates (omit a field to skip that dimension)"
// @Success 200 {object} SummaryResponse "Metrics and aggregated items ordered by total quantity"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/summary [post]
func getSummary(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	filter, err := filterFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := aggregate(applyFilter(store.allRecords(), filter))
	c.JSON(http.StatusOK, SummaryResponse{
		Metrics: summaryMetrics(items),
		Items:   items,
	})
}
