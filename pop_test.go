package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFaceCountTier(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "1F"},
		{4999, "1F"},
		{5000, "2F"},
		{19999, "2F"},
		{20000, "3F"},
		{50000, "4F"},
		{75000, "4F"},
		{99999, "4F"},
		{100000, "5F"},
		{250000, "5F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, faceCountTier(c.amount), "amount %v", c.amount)
	}
}

func TestIsSalePromotion(t *testing.T) {
	assert.True(t, isSalePromotion("特売"))
	assert.True(t, isSalePromotion("週末セール"))
	assert.True(t, isSalePromotion("スポット"))
	assert.False(t, isSalePromotion(""))
	assert.False(t, isSalePromotion("定番"))
}

func TestFormatYen(t *testing.T) {
	assert.Equal(t, "0", formatYen(0))
	assert.Equal(t, "198", formatYen(198))
	assert.Equal(t, "1,234,567", formatYen(1234567))
	// Fractions are truncated; prices in the exports are whole yen.
	assert.Equal(t, "99", formatYen(99.9))
}

func TestRenderPOP(t *testing.T) {
	item := AggregatedItem{
		Department:    "012",
		JAN:           "4900000000001",
		ProductName:   "テスト商品A",
		UnitPrice:     250,
		Promotion:     "特売",
		TotalQuantity: 300,
		TotalAmount:   75000,
	}

	t.Run("sale item renders red with its tier", func(t *testing.T) {
		svg := renderPOP(item, nil, day(1))

		assert.Contains(t, svg, "#ef4444")
		assert.Contains(t, svg, "#fef2f2")
		assert.Contains(t, svg, ">4F</text>")
		assert.Contains(t, svg, "特売")
		assert.Contains(t, svg, "4900000000001")
		assert.Contains(t, svg, "¥ 250")
		assert.Contains(t, svg, "¥ 75,000")
	})

	t.Run("regular item renders neutral with the default label", func(t *testing.T) {
		plain := item
		plain.Promotion = ""
		plain.TotalAmount = 3000

		svg := renderPOP(plain, nil, day(1))

		assert.Contains(t, svg, "#334155")
		assert.NotContains(t, svg, "#ef4444")
		assert.Contains(t, svg, "通常")
		assert.Contains(t, svg, ">1F</text>")
	})

	t.Run("calendar strip covers seven consecutive days", func(t *testing.T) {
		daily := map[time.Time]float64{
			day(1): 3,
			day(4): 5,
		}

		svg := renderPOP(item, daily, day(1))

		for d := 1; d <= 7; d++ {
			assert.Contains(t, svg, ">5/"+time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC).Format("2")+"</text>")
		}
		assert.Equal(t, 7, strings.Count(svg, `height="80"`))
		// Days without orders show 0 in dimmed text.
		assert.Equal(t, 5, strings.Count(svg, "#d1d5db"))
	})

	t.Run("free-text fields are escaped", func(t *testing.T) {
		hostile := item
		hostile.ProductName = `<script>alert("x")</script>`
		hostile.Promotion = "特売<b>"

		svg := renderPOP(hostile, nil, day(1))

		assert.NotContains(t, svg, "<script>")
		assert.Contains(t, svg, "&lt;script&gt;")
		assert.NotContains(t, svg, "<b>")
	})
}
