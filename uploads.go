package main

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Upload handler functions

// @Summary Upload order export files
// @Description Upload one or more order export files (CSV in UTF-8 or cp932, or XLSX). Encoding and layout are detected per file; unrecognized files are reported as failed and do not block the rest.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Order export files"
// @Success 200 {object} map[string]interface{} "Per-file results with detected layout, encoding and row count"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Router /api/uploads [post]
func uploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Detection and parsing are pure per file, so files parse
	// concurrently; results merge back in upload order.
	results := make([]Upload, len(files))
	recordSets := make([][]Record, len(files))
	var wg sync.WaitGroup
	for i, header := range files {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()
			results[i], recordSets[i] = parseUpload(header)
		}(i, header)
	}
	wg.Wait()

	for i := range results {
		store.add(results[i], recordSets[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload processed",
		"uploads": results,
	})
}

// parseUpload reads and parses a single uploaded file. Failures yield an
// upload entry with ok=false rather than an HTTP error, so one bad file
// never blocks a batch.
func parseUpload(header *multipart.FileHeader) (Upload, []Record) {
	info := Upload{
		ID:         uuid.New().String(),
		FileName:   header.Filename,
		Layout:     LayoutUnknown,
		UploadedAt: time.Now(),
	}

	data, err := readUploadedFile(header)
	if err != nil {
		log.Printf("Error reading upload %s: %v", header.Filename, err)
		info.Error = "Error reading uploaded file"
		return info, nil
	}

	records, det, err := parseExport(data)
	info.Layout = det.Layout
	info.Encoding = det.Encoding
	if err != nil {
		log.Printf("Error parsing upload %s: %v", header.Filename, err)
		info.Error = err.Error()
		return info, nil
	}

	info.OK = true
	info.RowCount = len(records)
	return info, records
}

func readUploadedFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}

// @Summary List session uploads
// @Description List every file uploaded in this session with its parse result, in upload order
// @Tags uploads
// @Produce json
// @Success 200 {array} Upload "Uploads in upload order"
// @Router /api/uploads [get]
func getUploads(c *gin.Context) {
	c.JSON(http.StatusOK, store.list())
}

// @Summary Clear session uploads
// @Description Remove every upload and its parsed records from the session
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{} "Confirmation message"
// @Router /api/uploads [delete]
func clearUploads(c *gin.Context) {
	store.clear()
	c.JSON(http.StatusOK, gin.H{"message": "Session cleared"})
}
