// Package handler orchestrates the notification pipeline for each event kind:
// enablement check, data fetch, filtering, enrichment, message construction
// and delivery, mapped into a uniform HandlerResult.
package handler

import (
	"context"
	"time"

	"github.com/herald-hq/herald/internal/message"
	"github.com/herald-hq/herald/internal/model"
)

// DocumentQuery narrows a document listing to a date range.
type DocumentQuery struct {
	Since time.Time
	Until time.Time
	Limit int
}

// DataFetcher is the host platform's data-access collaborator. Every call may
// fail; handlers decide per step whether a failure is fatal.
type DataFetcher interface {
	GetDocument(ctx context.Context, spaceID, documentID string) (*model.Document, error)
	ListDocuments(ctx context.Context, spaceID string, query DocumentQuery) ([]model.Document, error)
	ListCompanies(ctx context.Context, spaceID string, ids []string) ([]model.Company, error)
	GetExport(ctx context.Context, spaceID, exportID string) (*model.Export, error)
}

// Deliverer posts a built payload to the installation's webhook.
type Deliverer interface {
	SendMessage(ctx context.Context, payload message.Payload) error
}

// DelivererFactory builds a Deliverer for one installation's webhook URL.
// Construction fails on a malformed URL before any network attempt.
type DelivererFactory func(webhookURL string) (Deliverer, error)

// ResultRecorder persists handler outcomes for auditing. Recording is
// best-effort: a recorder failure never changes a handler's result.
type ResultRecorder interface {
	Record(ctx context.Context, spaceID string, result model.HandlerResult) error
}
