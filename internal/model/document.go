// Package model defines the core domain records used throughout the application.
package model

import "time"

// DocumentStatus indicates where a document sits in the processing lifecycle.
type DocumentStatus string

// Document status constants.
const (
	StatusNew           DocumentStatus = "new"
	StatusProcessing    DocumentStatus = "processing"
	StatusProcessed     DocumentStatus = "processed"
	StatusPendingReview DocumentStatus = "pending_review"
	StatusApproved      DocumentStatus = "approved"
	StatusExported      DocumentStatus = "exported"
)

// Document represents a single uploaded document as the host platform reports it.
// Most fields are optional: extraction may not have run yet, so consumers must
// tolerate empty vendor, category, and amount data.
type Document struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DueDate       *time.Time
	NetAmount     *float64
	VATAmount     *float64
	ID            string
	SpaceID       string
	VendorName    string
	InvoiceNumber string
	Currency      string
	CategoryID    string
	CategoryName  string
	CompanyID     string
	Status        DocumentStatus
	Total         float64
}

// Company is an optional enrichment entity attached to a document for display
// context. It is never required for a notification to go out.
type Company struct {
	ID   string
	Name string
}

// Export represents a completed document export job.
type Export struct {
	CreatedAt     time.Time
	CompletedAt   *time.Time
	ID            string
	Format        string
	Status        string
	DownloadURL   string
	DocumentCount int
}
