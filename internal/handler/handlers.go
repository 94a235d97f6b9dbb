package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/herald-hq/herald/internal/common"
	"github.com/herald-hq/herald/internal/filter"
	"github.com/herald-hq/herald/internal/message"
	"github.com/herald-hq/herald/internal/model"
	"github.com/herald-hq/herald/internal/slack"
	"github.com/herald-hq/herald/internal/summary"
)

// reasonDisabled is returned when the installation's toggle for the kind is off.
const reasonDisabled = "notification_type_disabled"

// reasonNoActivity is returned when the daily window contains no documents.
const reasonNoActivity = "no_activity"

// dailyWindow is the lookback covered by one daily summary.
const dailyWindow = 24 * time.Hour

// dailyDocumentLimit caps how many documents one summary run fetches.
const dailyDocumentLimit = 500

// Config assembles a Handlers instance. Fetcher and Builder are required;
// the rest default to production implementations.
type Config struct {
	Fetcher      DataFetcher
	Builder      *message.Builder
	NewDeliverer DelivererFactory
	Recorder     ResultRecorder
	Now          func() time.Time
}

// Handlers holds the per-event orchestration entry points. Each invocation is
// an independent unit of work: no state is shared between calls.
type Handlers struct {
	fetcher      DataFetcher
	builder      *message.Builder
	newDeliverer DelivererFactory
	recorder     ResultRecorder
	now          func() time.Time
}

// New validates the config and returns ready handlers.
func New(cfg Config) (*Handlers, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("%w: data fetcher is required", common.ErrMissingConfig)
	}
	if cfg.Builder == nil {
		return nil, fmt.Errorf("%w: message builder is required", common.ErrMissingConfig)
	}
	if cfg.NewDeliverer == nil {
		cfg.NewDeliverer = func(webhookURL string) (Deliverer, error) {
			return slack.NewClient(webhookURL)
		}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Handlers{
		fetcher:      cfg.Fetcher,
		builder:      cfg.Builder,
		newDeliverer: cfg.NewDeliverer,
		recorder:     cfg.Recorder,
		now:          cfg.Now,
	}, nil
}

// DocumentCreated handles a document-uploaded event.
func (h *Handlers) DocumentCreated(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult {
	return h.handleDocument(ctx, model.KindDocumentCreated, evt, settings)
}

// DocumentProcessed handles a document-processed event.
func (h *Handlers) DocumentProcessed(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult {
	return h.handleDocument(ctx, model.KindDocumentProcessed, evt, settings)
}

// DocumentUpdated handles a document-updated event.
func (h *Handlers) DocumentUpdated(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult {
	return h.handleDocument(ctx, model.KindDocumentUpdated, evt, settings)
}

func (h *Handlers) handleDocument(ctx context.Context, kind model.NotificationKind, evt model.DocumentEvent, settings model.Settings) model.HandlerResult {
	result := model.HandlerResult{Kind: kind, DocumentID: evt.DocumentID}

	if !filter.IsNotificationEnabled(kind, settings) {
		result.Skipped = true
		result.Reason = reasonDisabled
		return h.record(ctx, evt.SpaceID, result)
	}

	doc, err := h.fetcher.GetDocument(ctx, evt.SpaceID, evt.DocumentID)
	if err != nil {
		result.Error = fmt.Sprintf("failed to fetch document %s: %v", evt.DocumentID, err)
		return h.record(ctx, evt.SpaceID, result)
	}
	result.VendorName = doc.VendorName
	result.Amount = doc.Total

	if decision := filter.ShouldNotify(*doc, settings); !decision.ShouldNotify {
		result.Skipped = true
		result.Reason = decision.Reason
		return h.record(ctx, evt.SpaceID, result)
	}

	company := h.fetchCompany(ctx, evt.SpaceID, doc.CompanyID)

	now := h.now()
	var payload message.Payload
	switch kind {
	case model.KindDocumentCreated:
		payload = h.builder.DocumentCreated(*doc, company, now)
	case model.KindDocumentProcessed:
		payload = h.builder.DocumentProcessed(*doc, company, now)
	default:
		payload = h.builder.DocumentUpdated(*doc, company, now)
	}

	if err := h.deliver(ctx, settings, payload); err != nil {
		result.Error = err.Error()
		return h.record(ctx, evt.SpaceID, result)
	}

	result.Success = true
	return h.record(ctx, evt.SpaceID, result)
}

// ExportCompleted handles a finished export. When the export record cannot be
// fetched, the notification is still sent from the event's own fields rather
// than aborted.
func (h *Handlers) ExportCompleted(ctx context.Context, evt model.ExportEvent, settings model.Settings) model.HandlerResult {
	result := model.HandlerResult{Kind: model.KindExportCompleted, ExportID: evt.ExportID}

	if !filter.IsNotificationEnabled(model.KindExportCompleted, settings) {
		result.Skipped = true
		result.Reason = reasonDisabled
		return h.record(ctx, evt.SpaceID, result)
	}

	export, err := h.fetcher.GetExport(ctx, evt.SpaceID, evt.ExportID)
	if err != nil {
		common.LogError(err, "Failed to fetch export, using event fields", common.Fields{
			"export_id": evt.ExportID,
			"space_id":  evt.SpaceID,
		})
		export = &model.Export{
			ID:            evt.ExportID,
			Format:        evt.Format,
			Status:        "completed",
			DocumentCount: evt.DocumentCount,
		}
	}

	payload := h.builder.ExportCompleted(*export, h.now())
	if err := h.deliver(ctx, settings, payload); err != nil {
		result.Error = err.Error()
		return h.record(ctx, evt.SpaceID, result)
	}

	result.Success = true
	return h.record(ctx, evt.SpaceID, result)
}

// DailySummary handles the scheduled daily tick. An empty document window
// short-circuits with no_activity before any message is built or delivered.
func (h *Handlers) DailySummary(ctx context.Context, evt model.ScheduledEvent, settings model.Settings) model.HandlerResult {
	result := model.HandlerResult{Kind: model.KindDailySummary}

	if !filter.IsNotificationEnabled(model.KindDailySummary, settings) {
		result.Skipped = true
		result.Reason = reasonDisabled
		return h.record(ctx, evt.SpaceID, result)
	}

	scheduledAt := evt.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = h.now()
	}

	docs, err := h.fetcher.ListDocuments(ctx, evt.SpaceID, DocumentQuery{
		Since: scheduledAt.Add(-dailyWindow),
		Until: scheduledAt,
		Limit: dailyDocumentLimit,
	})
	if err != nil {
		result.Error = fmt.Sprintf("failed to list documents: %v", err)
		return h.record(ctx, evt.SpaceID, result)
	}

	if len(docs) == 0 {
		result.Skipped = true
		result.Reason = reasonNoActivity
		return h.record(ctx, evt.SpaceID, result)
	}

	stats := summary.Aggregate(docs)
	result.Stats = &stats

	payload := h.builder.DailySummary(stats, scheduledAt)
	if err := h.deliver(ctx, settings, payload); err != nil {
		result.Error = err.Error()
		return h.record(ctx, evt.SpaceID, result)
	}

	result.Success = true
	return h.record(ctx, evt.SpaceID, result)
}

// TestConnection sends a test message and translates delivery failures into
// actionable guidance for the user who clicked "test".
func (h *Handlers) TestConnection(ctx context.Context, action model.TestAction, settings model.Settings) model.HandlerResult {
	result := model.HandlerResult{Kind: model.KindTestConnection}

	payload := h.builder.TestConnection()
	if err := h.deliver(ctx, settings, payload); err != nil {
		result.Error = err.Error()
		if guidance := slack.Guidance(err); guidance != "" {
			result.Message = guidance
		}
		return h.record(ctx, action.SpaceID, result)
	}

	result.Success = true
	result.Message = "Test message sent. Check your Slack channel."
	return h.record(ctx, action.SpaceID, result)
}

// fetchCompany loads the enrichment entity best-effort: failures are logged
// and degrade to "no enrichment", never failing the handler.
func (h *Handlers) fetchCompany(ctx context.Context, spaceID, companyID string) *model.Company {
	if companyID == "" {
		return nil
	}

	companies, err := h.fetcher.ListCompanies(ctx, spaceID, []string{companyID})
	if err != nil {
		slog.Warn("Company enrichment failed, continuing without it",
			"company_id", companyID,
			"space_id", spaceID,
			"error", err)
		return nil
	}
	if len(companies) == 0 {
		return nil
	}
	return &companies[0]
}

func (h *Handlers) deliver(ctx context.Context, settings model.Settings, payload message.Payload) error {
	client, err := h.newDeliverer(settings.WebhookURL)
	if err != nil {
		return err
	}
	return client.SendMessage(ctx, message.Decorate(payload, settings))
}

// record persists the outcome when a recorder is configured and always hands
// the result back unchanged.
func (h *Handlers) record(ctx context.Context, spaceID string, result model.HandlerResult) model.HandlerResult {
	if h.recorder != nil {
		if err := h.recorder.Record(ctx, spaceID, result); err != nil {
			common.LogError(err, "Failed to record handler result", common.Fields{
				"space_id": spaceID,
				"kind":     result.Kind,
			})
		}
	}
	return result
}
