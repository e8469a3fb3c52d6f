package main

import (
	"fmt"
	"html"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// POP artifact rendering: one self-contained SVG per aggregated item,
// sized for in-store printing.

// Face-count tier by expected total amount, highest threshold first.
func faceCountTier(totalAmount float64) string {
	switch {
	case totalAmount >= 100000:
		return "5F"
	case totalAmount >= 50000:
		return "4F"
	case totalAmount >= 20000:
		return "3F"
	case totalAmount >= 5000:
		return "2F"
	}
	return "1F"
}

// saleMarkers flag a promotion label as a sale when contained anywhere in
// it: 特売 (special sale), セール (campaign sale), スポ (spot promotion).
var saleMarkers = []string{"特売", "セール", "スポ"}

func isSalePromotion(promo string) bool {
	for _, marker := range saleMarkers {
		if strings.Contains(promo, marker) {
			return true
		}
	}
	return false
}

// yenPrinter renders digit-grouped amounts (1,234,567).
var yenPrinter = message.NewPrinter(language.Japanese)

func formatYen(v float64) string {
	return yenPrinter.Sprintf("%d", int64(v))
}

// renderPOP draws the promotional SVG for one item: classification
// header, department, face-count tier, JAN code, product name, unit
// price, expected amount, total quantity and a 7-cell calendar strip
// starting at start. daily maps calendar date to that day's quantity;
// absent days render as 0 with dimmed text. Product name and promotion
// label are attacker-controlled free text and are escaped.
func renderPOP(item AggregatedItem, daily map[time.Time]float64, start time.Time) string {
	accent := "#334155"
	headerBG := "#f8fafc"
	if isSalePromotion(item.Promotion) {
		accent = "#ef4444"
		headerBG = "#fef2f2"
	}

	promoLabel := item.Promotion
	if promoLabel == "" {
		promoLabel = "通常"
	}
	promoLabel = html.EscapeString(promoLabel)
	name := html.EscapeString(item.ProductName)

	var calendar strings.Builder
	day := start
	for i := 0; i < 7; i++ {
		qty := daily[day]
		cellFill := "#fff"
		if i%2 != 0 {
			cellFill = "#f9fafb"
		}
		textFill := "#000"
		if qty <= 0 {
			textFill = "#d1d5db"
		}
		fmt.Fprintf(&calendar,
			`<g transform="translate(%d, 355)">`+
				`<rect width="84" height="80" fill="%s" stroke="#e2e8f0"/>`+
				`<text x="42" y="20" font-family="sans-serif" font-size="12" fill="#64748b" text-anchor="middle">%d/%d</text>`+
				`<text x="42" y="60" font-family="sans-serif" font-size="26" fill="%s" font-weight="bold" text-anchor="middle">%d</text>`+
				`</g>`,
			5+i*84, cellFill, int(day.Month()), day.Day(), textFill, int(qty))
		day = day.AddDate(0, 0, 1)
	}

	var svg strings.Builder
	svg.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 600 440" style="background:#fff;">`)
	fmt.Fprintf(&svg, `<rect x="5" y="5" width="590" height="430" fill="white" stroke="%s" stroke-width="6"/>`, accent)
	fmt.Fprintf(&svg, `<rect x="5" y="5" width="590" height="65" fill="%s"/>`, headerBG)
	fmt.Fprintf(&svg, `<line x1="200" y1="5" x2="200" y2="70" stroke="%s" stroke-width="2"/>`, accent)
	fmt.Fprintf(&svg, `<line x1="400" y1="5" x2="400" y2="70" stroke="%s" stroke-width="2"/>`, accent)
	fmt.Fprintf(&svg, `<line x1="5" y1="70" x2="595" y2="70" stroke="%s" stroke-width="2"/>`, accent)
	fmt.Fprintf(&svg, `<text x="102" y="45" font-family="sans-serif" font-size="28" font-weight="900" text-anchor="middle" fill="%s">%s</text>`, accent, promoLabel)
	svg.WriteString(`<text x="215" y="25" font-family="sans-serif" font-size="12" fill="#64748b">部門</text>`)
	fmt.Fprintf(&svg, `<text x="215" y="55" font-family="sans-serif" font-size="24" font-weight="bold" fill="#1e293b">%s</text>`, item.Department)
	svg.WriteString(`<text x="415" y="25" font-family="sans-serif" font-size="12" fill="#64748b">フェイス数</text>`)
	fmt.Fprintf(&svg, `<text x="500" y="55" font-family="sans-serif" font-size="40" font-weight="900" text-anchor="middle" fill="%s">%s</text>`, accent, faceCountTier(item.TotalAmount))
	svg.WriteString(`<text x="25" y="105" font-family="sans-serif" font-size="12" fill="#64748b">JAN CODE</text>`)
	fmt.Fprintf(&svg, `<text x="25" y="145" font-family="monospace" font-size="40" font-weight="bold" letter-spacing="4" fill="#1e293b">%s</text>`, html.EscapeString(item.JAN))
	fmt.Fprintf(&svg, `<text x="25" y="185" font-family="sans-serif" font-size="34" font-weight="900" fill="#000">%s</text>`, name)
	svg.WriteString(`<line x1="5" y1="205" x2="595" y2="205" stroke="#e2e8f0" stroke-width="2"/>`)
	svg.WriteString(`<text x="25" y="235" font-family="sans-serif" font-size="12" fill="#64748b">単価</text>`)
	fmt.Fprintf(&svg, `<text x="25" y="275" font-family="sans-serif" font-size="32" font-weight="bold">¥ %s</text>`, formatYen(item.UnitPrice))
	svg.WriteString(`<text x="25" y="315" font-family="sans-serif" font-size="12" fill="#64748b">合計見込額</text>`)
	fmt.Fprintf(&svg, `<text x="25" y="345" font-family="sans-serif" font-size="28" font-weight="bold" fill="%s">¥ %s</text>`, accent, formatYen(item.TotalAmount))
	svg.WriteString(`<rect x="340" y="215" width="240" height="130" rx="8" fill="#f1f5f9"/>`)
	svg.WriteString(`<text x="360" y="245" font-family="sans-serif" font-size="14" font-weight="bold" fill="#475569">合計点数</text>`)
	fmt.Fprintf(&svg, `<text x="460" y="325" font-family="sans-serif" font-size="90" font-weight="900" text-anchor="middle" fill="#000">%d</text>`, int(item.TotalQuantity))
	svg.WriteString(`<text x="560" y="325" font-family="sans-serif" font-size="20" font-weight="bold" text-anchor="end" fill="#475569">点</text>`)
	svg.WriteString(calendar.String())
	svg.WriteString(`</svg>`)
	return svg.String()
}
