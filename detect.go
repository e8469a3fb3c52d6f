package main

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Format and encoding detection
//
// Source files declare no schema, so the layout is inferred from keyword
// signatures in the header region. Probes are data-driven: new layouts
// are added by extending the signature list, not the control flow.

const (
	sniffLimit      = 8192 // bytes examined by the probe
	headerScanLimit = 30   // lines examined per encoding candidate
)

const (
	encodingUTF8  = "utf-8"
	encodingCP932 = "cp932"
)

// A layoutSignature marks a layout by two substrings that must appear on
// the same header line.
type layoutSignature struct {
	layout   Layout
	keywords [2]string
}

// Matrix is probed before transactional: 部門 appears in both header
// styles, so the order of these entries is load-bearing.
var layoutSignatures = []layoutSignature{
	{LayoutMatrix, [2]string{"JANコード", "部門"}},
	{LayoutTransactional, [2]string{"納品日", "部門"}},
}

// UTF-8 is tried before cp932 because a cp932 byte stream rarely survives
// a strict UTF-8 check, while the reverse false-positive is common.
var encodingCandidates = []string{encodingUTF8, encodingCP932}

// detect probes the head of a raw file for an encoding and a layout
// signature. Layout is LayoutUnknown when nothing matches within the scan
// limits; the caller then falls back to parseFallback.
func detect(data []byte) Detection {
	sample := data
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
		// Drop the trailing partial line so a character cut at the
		// sample boundary cannot fail an otherwise valid decode.
		if i := bytes.LastIndexByte(sample, '\n'); i > 0 {
			sample = sample[:i]
		}
	}

	for _, enc := range encodingCandidates {
		text, ok := decodeSample(sample, enc)
		if !ok {
			continue
		}
		if layout, row, found := scanHeaderLines(splitLines(text), headerScanLimit); found {
			return Detection{Encoding: enc, HeaderRow: row, Layout: layout}
		}
	}

	return Detection{Encoding: encodingCP932, HeaderRow: 0, Layout: LayoutUnknown}
}

// detectRows runs the same signature scan over an already-decoded row
// grid (the workbook ingestion path).
func detectRows(rows [][]string) Detection {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	det := Detection{Encoding: encodingUTF8, HeaderRow: 0, Layout: LayoutUnknown}
	if layout, row, found := scanHeaderLines(lines, headerScanLimit); found {
		det.HeaderRow = row
		det.Layout = layout
	}
	return det
}

// scanHeaderLines returns the first line satisfying any layout signature.
func scanHeaderLines(lines []string, limit int) (Layout, int, bool) {
	for i, line := range lines {
		if i >= limit {
			break
		}
		for _, sig := range layoutSignatures {
			if strings.Contains(line, sig.keywords[0]) && strings.Contains(line, sig.keywords[1]) {
				return sig.layout, i, true
			}
		}
	}
	return LayoutUnknown, 0, false
}

// decodeSample attempts a strict decode of the probe sample. cp932 input
// that does not round-trip cleanly (the decoder substitutes U+FFFD) is
// rejected so the next candidate gets a chance.
func decodeSample(sample []byte, enc string) (string, bool) {
	switch enc {
	case encodingUTF8:
		trimmed := bytes.TrimPrefix(sample, utf8BOM)
		if !utf8.Valid(trimmed) {
			return "", false
		}
		return string(trimmed), true
	case encodingCP932:
		decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), sample)
		if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
			return "", false
		}
		return string(decoded), true
	}
	return "", false
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
