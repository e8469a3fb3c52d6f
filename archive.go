package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Archive packaging: the rendered POP documents bundled into one zip.

// hostileChars strips every character that is unsafe in a filename on
// common filesystems.
var hostileChars = strings.NewReplacer(
	`\`, "", `/`, "", `:`, "", `*`, "", `?`, "", `"`, "", `<`, "", `>`, "", `|`, "",
)

func sanitizeFilename(s string) string {
	return hostileChars.Replace(s)
}

// buildPOPArchive renders one SVG per aggregated item and writes it into
// a deflate-compressed zip as {department}_{jan}.svg. Two items reducing
// to the same sanitized name are not deduplicated: both entries are
// written and the later one wins on extraction.
func buildPOPArchive(items []AggregatedItem, daily map[string]map[time.Time]float64, start time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, item := range items {
		name := fmt.Sprintf("%s_%s.svg", sanitizeFilename(item.Department), sanitizeFilename(item.JAN))
		entry, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create archive entry %s: %w", name, err)
		}
		svg := renderPOP(item, daily[item.JAN], start)
		if _, err := entry.Write([]byte(svg)); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
