package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactional(t *testing.T) {
	header := []string{"納品日", "部門", "商品コード", "商品名", "発注数量", "売単価", "発注区分"}

	t.Run("normalizes every field of a well-formed row", func(t *testing.T) {
		rows := [][]string{
			header,
			{"20240501", "12", "'4900000000001", "テスト商品A", "3", "100", "特売"},
		}

		records := parseTransactional(rows, 0)

		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), r.Date)
		assert.Equal(t, "012", r.Department)
		assert.Equal(t, "4900000000001", r.JAN)
		assert.Equal(t, "テスト商品A", r.ProductName)
		assert.Equal(t, 3.0, r.Quantity)
		assert.Equal(t, 100.0, r.UnitPrice)
		assert.Equal(t, "特売", r.Promotion)
	})

	t.Run("returns nil when a required column is missing", func(t *testing.T) {
		rows := [][]string{
			{"納品日", "部門", "商品名"},
			{"20240501", "12", "テスト商品A"},
		}

		assert.Nil(t, parseTransactional(rows, 0))
	})

	t.Run("returns empty, not nil, when only the header is present", func(t *testing.T) {
		records := parseTransactional([][]string{header}, 0)

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("drops rows whose delivery date does not parse", func(t *testing.T) {
		rows := [][]string{
			header,
			{"not a date", "12", "4900000000001", "A", "1", "100", ""},
			{"20240501", "12", "4900000000002", "B", "1", "100", ""},
			{"", "12", "4900000000003", "C", "1", "100", ""},
		}

		records := parseTransactional(rows, 0)

		require.Len(t, records, 1)
		assert.Equal(t, "4900000000002", records[0].JAN)
	})

	t.Run("reads the header at its detected offset", func(t *testing.T) {
		rows := [][]string{
			{"発注データ一覧"},
			{""},
			header,
			{"20240501", "12", "4900000000001", "A", "2", "100", ""},
		}

		records := parseTransactional(rows, 2)

		require.Len(t, records, 1)
		assert.Equal(t, 2.0, records[0].Quantity)
	})

	t.Run("degrades blank and malformed optional fields without dropping the row", func(t *testing.T) {
		rows := [][]string{
			header,
			{"20240501", "12", "4900000000001", "", "abc", "", "nan"},
		}

		records := parseTransactional(rows, 0)

		require.Len(t, records, 1)
		r := records[0]
		assert.Zero(t, r.Quantity)
		assert.Zero(t, r.UnitPrice)
		assert.Empty(t, r.ProductName)
		assert.Empty(t, r.Promotion)
	})

	t.Run("tolerates short rows missing trailing cells", func(t *testing.T) {
		rows := [][]string{
			header,
			{"20240501", "12", "4900000000001"},
		}

		records := parseTransactional(rows, 0)

		require.Len(t, records, 1)
		assert.Zero(t, records[0].Quantity)
		assert.Empty(t, records[0].Promotion)
	})

	t.Run("strips an exporter float suffix from the product code", func(t *testing.T) {
		rows := [][]string{
			header,
			{"20240501", "12.0", "4900000000001.0", "A", "1", "100", ""},
		}

		records := parseTransactional(rows, 0)

		require.Len(t, records, 1)
		assert.Equal(t, "4900000000001", records[0].JAN)
		assert.Equal(t, "012", records[0].Department)
	})
}
