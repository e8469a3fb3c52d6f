package main

import (
	"os"
	"strconv"
)

// Shared small helpers

// formatNumber renders a float the shortest way that round-trips, so
// whole quantities export as "5" and fractional ones as "0.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// getEnvOrDefault returns an environment variable value or the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
