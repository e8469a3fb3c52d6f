package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Row grid ingestion
//
// Both the CSV and the workbook paths reduce an upload to a plain
// [][]string grid; detection and the two parsers operate on that grid
// without caring where it came from.

// xlsxMagic is the zip local-file-header prefix every .xlsx starts with.
var xlsxMagic = []byte("PK\x03\x04")

func isWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, xlsxMagic)
}

// readCSVRows decodes raw bytes with the given encoding and parses them
// into a row grid. Rows may have differing field counts; merged-header
// exports are ragged by nature.
func readCSVRows(data []byte, enc string) ([][]string, error) {
	var text string
	switch enc {
	case encodingUTF8:
		text = string(bytes.TrimPrefix(data, utf8BOM))
	case encodingCP932:
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode cp932: %w", err)
		}
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return nil, fmt.Errorf("decode cp932: invalid byte sequence")
		}
		text = string(decoded)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}

	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// readWorkbookRows flattens the first sheet of an xlsx upload into the
// same row grid the CSV path produces.
func readWorkbookRows(data []byte) ([][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// parseExport turns one uploaded file into canonical records. Failures
// are per-file: an unrecognized or undecodable file yields an error and
// no records, and the pipeline continues with the remaining files.
func parseExport(data []byte) ([]Record, Detection, error) {
	if isWorkbook(data) {
		rows, err := readWorkbookRows(data)
		if err != nil {
			return nil, Detection{Encoding: encodingUTF8, Layout: LayoutUnknown}, err
		}
		det := detectRows(rows)
		return parseRows(rows, det)
	}

	det := detect(data)
	if det.Layout == LayoutUnknown {
		return parseFallback(data)
	}

	rows, err := readCSVRows(data, det.Encoding)
	if err != nil {
		return nil, det, err
	}
	return parseRows(rows, det)
}

func parseRows(rows [][]string, det Detection) ([]Record, Detection, error) {
	switch det.Layout {
	case LayoutTransactional:
		records := parseTransactional(rows, det.HeaderRow)
		if records == nil {
			return nil, det, fmt.Errorf("required columns missing")
		}
		return records, det, nil
	case LayoutMatrix:
		return parseMatrix(rows, det.HeaderRow), det, nil
	}
	return nil, det, fmt.Errorf("unrecognized layout")
}

// parseFallback handles files whose keyword row sits beyond the scan
// limits: a fixed cp932, header-row-0 read followed by a content re-check
// of the same signatures over the first rows. Degrades to an error, never
// a panic.
func parseFallback(data []byte) ([]Record, Detection, error) {
	det := Detection{Encoding: encodingCP932, HeaderRow: 0, Layout: LayoutUnknown}

	rows, err := readCSVRows(data, encodingCP932)
	if err != nil {
		return nil, det, err
	}

	preview := rows
	if len(preview) > 10 {
		preview = preview[:10]
	}
	var joined strings.Builder
	for _, row := range preview {
		joined.WriteString(strings.Join(row, ","))
		joined.WriteByte('\n')
	}
	content := joined.String()

	switch {
	case strings.Contains(content, "JANコード"):
		det.Layout = LayoutMatrix
	case strings.Contains(content, "納品日"):
		det.Layout = LayoutTransactional
	default:
		return nil, det, fmt.Errorf("unrecognized layout")
	}
	return parseRows(rows, det)
}
