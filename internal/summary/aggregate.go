// Package summary reduces a day's documents into the statistics shown by the
// daily summary notification.
package summary

import (
	"strings"

	"github.com/herald-hq/herald/internal/model"
)

// uncategorizedLabel buckets documents without a category name.
const uncategorizedLabel = "Uncategorized"

// Aggregate computes DailySummaryStats over a document collection. It is a
// pure reduction; callers decide what to do with an empty input (the daily
// handler skips the notification entirely).
//
// TotalAmount sums only the primary currency: the one appearing on the most
// documents, first-encountered winning ties. Amounts in other currencies are
// deliberately left out of the total rather than mixed across units.
func Aggregate(docs []model.Document) model.DailySummaryStats {
	stats := model.DailySummaryStats{
		ProcessedCount: len(docs),
		CategoryCounts: make(map[string]int),
	}

	currencyCounts := make(map[string]int)
	currencyTotals := make(map[string]float64)
	var currencyOrder []string

	vendorCounts := make(map[string]int)
	var vendorOrder []string

	for _, doc := range docs {
		if doc.Status == model.StatusPendingReview {
			stats.PendingCount++
		}

		currency := strings.ToUpper(strings.TrimSpace(doc.Currency))
		if currency == "" {
			currency = "EUR"
		}
		if _, seen := currencyCounts[currency]; !seen {
			currencyOrder = append(currencyOrder, currency)
		}
		currencyCounts[currency]++
		currencyTotals[currency] += doc.Total

		if vendor := strings.TrimSpace(doc.VendorName); vendor != "" {
			if _, seen := vendorCounts[vendor]; !seen {
				vendorOrder = append(vendorOrder, vendor)
			}
			vendorCounts[vendor]++
		}

		category := strings.TrimSpace(doc.CategoryName)
		if category == "" {
			category = uncategorizedLabel
		}
		if _, seen := stats.CategoryCounts[category]; !seen {
			stats.CategoryOrder = append(stats.CategoryOrder, category)
		}
		stats.CategoryCounts[category]++
	}

	for _, currency := range currencyOrder {
		if stats.Currency == "" || currencyCounts[currency] > currencyCounts[stats.Currency] {
			stats.Currency = currency
		}
	}
	if stats.Currency != "" {
		stats.TotalAmount = currencyTotals[stats.Currency]
	}

	for _, vendor := range vendorOrder {
		if vendorCounts[vendor] > stats.TopVendorCount {
			stats.TopVendor = vendor
			stats.TopVendorCount = vendorCounts[vendor]
		}
	}

	return stats
}
