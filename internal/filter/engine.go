package filter

import (
	"fmt"
	"strings"

	"github.com/herald-hq/herald/internal/model"
)

// defaultCurrency applies when a document or the minimum-amount setting has no
// currency of its own.
const defaultCurrency = "EUR"

// ShouldNotify evaluates the configured content filters against a document.
// Checks run in fixed order (minimum amount, vendor, category) and
// short-circuit on the first failure; a document that clears all three
// notifies. Missing document data never blocks: a check whose input is absent
// passes.
func ShouldNotify(doc model.Document, settings model.Settings) model.FilterResult {
	if result := checkMinimumAmount(doc, settings); !result.ShouldNotify {
		return result
	}
	if result := checkVendor(doc, settings); !result.ShouldNotify {
		return result
	}
	if result := checkCategory(doc, settings); !result.ShouldNotify {
		return result
	}
	return model.FilterResult{ShouldNotify: true}
}

// checkMinimumAmount blocks documents below the configured threshold, but only
// when the document currency matches the threshold currency. Comparing amounts
// across currencies is meaningless, so a mismatch skips the check entirely
// rather than guessing.
func checkMinimumAmount(doc model.Document, settings model.Settings) model.FilterResult {
	if settings.MinimumAmount <= 0 {
		return model.FilterResult{ShouldNotify: true}
	}

	docCurrency := normalizeCurrency(doc.Currency)
	filterCurrency := normalizeCurrency(settings.MinimumAmountCurrency)
	if docCurrency != filterCurrency {
		return model.FilterResult{ShouldNotify: true}
	}

	if doc.Total < settings.MinimumAmount {
		return model.FilterResult{
			Reason: fmt.Sprintf("amount_below_minimum:%.2f<%.2f", doc.Total, settings.MinimumAmount),
		}
	}
	return model.FilterResult{ShouldNotify: true}
}

// checkVendor blocks documents whose vendor matches none of the configured
// filter entries. A document without a vendor name passes.
func checkVendor(doc model.Document, settings model.Settings) model.FilterResult {
	if len(settings.VendorFilter) == 0 {
		return model.FilterResult{ShouldNotify: true}
	}
	if strings.TrimSpace(doc.VendorName) == "" {
		return model.FilterResult{ShouldNotify: true}
	}

	for _, entry := range settings.VendorFilter {
		if bidirectionalMatch(entry, doc.VendorName) {
			return model.FilterResult{ShouldNotify: true}
		}
	}
	return model.FilterResult{
		Reason: "vendor_not_in_filter:" + doc.VendorName,
	}
}

// checkCategory blocks documents whose category matches none of the configured
// filter entries, by exact id or by name substring. A document with neither
// category id nor name passes.
func checkCategory(doc model.Document, settings model.Settings) model.FilterResult {
	if len(settings.CategoryFilter) == 0 {
		return model.FilterResult{ShouldNotify: true}
	}
	if doc.CategoryID == "" && doc.CategoryName == "" {
		return model.FilterResult{ShouldNotify: true}
	}

	for _, entry := range settings.CategoryFilter {
		if doc.CategoryID != "" && strings.EqualFold(strings.TrimSpace(entry), doc.CategoryID) {
			return model.FilterResult{ShouldNotify: true}
		}
		if doc.CategoryName != "" && bidirectionalMatch(entry, doc.CategoryName) {
			return model.FilterResult{ShouldNotify: true}
		}
	}

	label := doc.CategoryName
	if label == "" {
		label = doc.CategoryID
	}
	return model.FilterResult{
		Reason: "category_not_in_filter:" + label,
	}
}

// bidirectionalMatch reports whether either trimmed, lowercased string
// contains the other. "Amazon" matches "Amazon Web Services" in both
// directions. Short filter entries can cross-match surprisingly broadly;
// that behavior is intentional and covered by tests.
func bidirectionalMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return defaultCurrency
	}
	return c
}
