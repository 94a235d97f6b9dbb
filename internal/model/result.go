package model

// FilterResult reports a filter decision. Reason is a stable machine-readable
// token (not prose) so the host can log and aggregate skip causes.
type FilterResult struct {
	Reason       string `json:"reason,omitempty"`
	ShouldNotify bool   `json:"shouldNotify"`
}

// DailySummaryStats is the reduction of one day's documents into the numbers
// shown by the daily summary message. It is derived on every run, never stored.
//
// TotalAmount covers only the primary currency (the one with the most
// documents); totals in other currencies are intentionally excluded. This is a
// known limitation of the single-amount summary line, not an accident.
type DailySummaryStats struct {
	CategoryCounts map[string]int `json:"categoryCounts"`
	// CategoryOrder records first-encounter order of category names so
	// renderers can break count ties deterministically.
	CategoryOrder  []string `json:"-"`
	Currency       string   `json:"currency"`
	TopVendor      string   `json:"topVendor,omitempty"`
	TotalAmount    float64  `json:"totalAmount"`
	ProcessedCount int      `json:"processedCount"`
	PendingCount   int      `json:"pendingCount"`
	TopVendorCount int      `json:"topVendorCount,omitempty"`
}

// HandlerResult is the uniform outcome contract every event handler returns.
// Handlers report failures through it instead of returning errors to the host.
type HandlerResult struct {
	Stats      *DailySummaryStats `json:"stats,omitempty"`
	Kind       NotificationKind   `json:"kind"`
	Reason     string             `json:"reason,omitempty"`
	Error      string             `json:"error,omitempty"`
	DocumentID string             `json:"documentId,omitempty"`
	VendorName string             `json:"vendorName,omitempty"`
	ExportID   string             `json:"exportId,omitempty"`
	Message    string             `json:"message,omitempty"`
	Amount     float64            `json:"amount,omitempty"`
	Success    bool               `json:"success"`
	Skipped    bool               `json:"skipped,omitempty"`
}
