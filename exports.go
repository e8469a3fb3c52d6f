package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Export handler functions

// @Summary Download pivot CSV
// @Description Apply the given filters and download the wide date-pivoted CSV (UTF-8 with BOM)
// @Tags exports
// @Accept json
// @Produce text/csv
// @Param filters body FilterRequest true "Filter predicates"
// @Success 200 {file} file "Order_YYYYMMDD.csv"
// @Failure 400 {object} map[string]interface{} "Bad request (no matching records or invalid filters)"
// @Router /api/exports/pivot [post]
func exportPivotCSV(c *gin.Context) {
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

	records := applyFilter(store.allRecords(), filter)
	csvBytes := buildPivotCSV(records)
	if len(csvBytes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no matching records"})
		return
	}

	filename := fmt.Sprintf("Order_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}

// @Summary Download POP archive
// @Description Apply the given filters, render one POP SVG per aggregated item and download them as a zip. The 7-day calendar window starts at window_start (YYYY-MM-DD), defaulting to the earliest filtered date.
// @Tags exports
// @Accept json
// @Produce application/zip
// @Param request body PopExportRequest true "Filter predicates plus calendar window start"
// @Success 200 {file} file "POP_YYYYMMDD.zip"
// @Failure 400 {object} map[string]interface{} "Bad request (no matching items or invalid request)"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/exports/pop [post]
func exportPOPArchive(c *gin.Context) {
	var req PopExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	filter, err := filterFromRequest(req.FilterRequest)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records := applyFilter(store.allRecords(), filter)
	items := aggregate(records)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no matching items"})
		return
	}

	start, _ := dateBounds(records)
	if req.WindowStart != "" {
		t, err := time.Parse("2006-01-02", req.WindowStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid window_start %q", req.WindowStart)})
			return
		}
		start = t
	}

	archive, err := buildPOPArchive(items, dailyQuantities(records), start)
	if err != nil {
		log.Printf("Error building POP archive: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building POP archive"})
		return
	}

	filename := fmt.Sprintf("POP_%s.zip", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zip", archive)
}
