package summary

import (
	"testing"

	"github.com/herald-hq/herald/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_MixedCurrencies(t *testing.T) {
	docs := []model.Document{
		{Total: 100, Currency: "EUR", VendorName: "A"},
		{Total: 50, Currency: "EUR", VendorName: "A"},
		{Total: 30, Currency: "USD", VendorName: "B"},
	}

	stats := Aggregate(docs)

	assert.Equal(t, 3, stats.ProcessedCount)
	assert.Equal(t, "EUR", stats.Currency)
	// Known limitation: the USD 30 is excluded from the total on purpose;
	// only the primary currency is summed.
	assert.InDelta(t, 150, stats.TotalAmount, 0.001)
	assert.Equal(t, "A", stats.TopVendor)
	assert.Equal(t, 2, stats.TopVendorCount)
}

func TestAggregate_CurrencyTieFirstEncounteredWins(t *testing.T) {
	docs := []model.Document{
		{Total: 10, Currency: "USD"},
		{Total: 20, Currency: "EUR"},
	}

	stats := Aggregate(docs)

	assert.Equal(t, "USD", stats.Currency)
	assert.InDelta(t, 10, stats.TotalAmount, 0.001)
}

func TestAggregate_MissingCurrencyDefaultsToEUR(t *testing.T) {
	docs := []model.Document{
		{Total: 10},
		{Total: 20, Currency: "eur"},
	}

	stats := Aggregate(docs)

	assert.Equal(t, "EUR", stats.Currency)
	assert.InDelta(t, 30, stats.TotalAmount, 0.001)
}

func TestAggregate_PendingCount(t *testing.T) {
	docs := []model.Document{
		{Status: model.StatusPendingReview},
		{Status: model.StatusProcessed},
		{Status: model.StatusPendingReview},
		{Status: model.StatusApproved},
	}

	stats := Aggregate(docs)

	assert.Equal(t, 4, stats.ProcessedCount)
	assert.Equal(t, 2, stats.PendingCount)
}

func TestAggregate_TopVendor(t *testing.T) {
	t.Run("tie broken by first encountered", func(t *testing.T) {
		docs := []model.Document{
			{VendorName: "B"},
			{VendorName: "A"},
			{VendorName: "B"},
			{VendorName: "A"},
		}

		stats := Aggregate(docs)

		assert.Equal(t, "B", stats.TopVendor)
		assert.Equal(t, 2, stats.TopVendorCount)
	})

	t.Run("empty when no document has a vendor", func(t *testing.T) {
		docs := []model.Document{{Total: 10}, {Total: 20}}

		stats := Aggregate(docs)

		assert.Empty(t, stats.TopVendor)
		assert.Zero(t, stats.TopVendorCount)
	})
}

func TestAggregate_CategoryBreakdown(t *testing.T) {
	docs := []model.Document{
		{CategoryName: "Travel"},
		{CategoryName: "Travel"},
		{CategoryName: "Office"},
		{},
	}

	stats := Aggregate(docs)

	assert.Equal(t, map[string]int{
		"Travel":        2,
		"Office":        1,
		"Uncategorized": 1,
	}, stats.CategoryCounts)
	assert.Equal(t, []string{"Travel", "Office", "Uncategorized"}, stats.CategoryOrder)
}

func TestAggregate_EmptyInput(t *testing.T) {
	stats := Aggregate(nil)

	assert.Zero(t, stats.ProcessedCount)
	assert.Zero(t, stats.TotalAmount)
	assert.Empty(t, stats.Currency)
	assert.Empty(t, stats.CategoryCounts)
}
