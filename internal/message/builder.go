package message

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/herald-hq/herald/internal/format"
	"github.com/herald-hq/herald/internal/model"
)

// Due-date warnings cover due dates up to a week out.
const dueWarningWindowDays = 7

// Builder assembles notification payloads. The app base URL anchors the
// navigational buttons attached to every message.
type Builder struct {
	appBaseURL string
}

// NewBuilder creates a message builder targeting the given app base URL.
func NewBuilder(appBaseURL string) *Builder {
	return &Builder{appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

// DocumentCreated builds the notification for a freshly uploaded document.
// Extraction usually has not run yet, so the vendor falls back to
// "Processing...".
func (b *Builder) DocumentCreated(doc model.Document, company *model.Company, now time.Time) Payload {
	vendor := vendorOrFallback(doc.VendorName, "Processing...")

	blocks := []Block{
		headerBlock("📥 New document received"),
		sectionFields(
			mrkdwn("*Vendor:*\n"+vendor),
			mrkdwn("*Amount:*\n"+format.Amount(doc.Total, doc.Currency)),
			mrkdwn("*Invoice number:*\n"+invoiceOrFallback(doc.InvoiceNumber)),
			mrkdwn("*Date:*\n"+format.Date(doc.CreatedAt)),
		),
	}
	blocks = appendDocumentContext(blocks, doc, company, now)
	blocks = append(blocks, actionsBlock(
		linkButton("View document", b.documentURL(doc.ID), ""),
	))

	return assemble(model.KindDocumentCreated, "New document received: "+vendor, blocks)
}

// DocumentProcessed builds the notification for a document whose extraction
// finished.
func (b *Builder) DocumentProcessed(doc model.Document, company *model.Company, now time.Time) Payload {
	vendor := vendorOrFallback(doc.VendorName, "Unknown")
	amount := format.Amount(doc.Total, doc.Currency)

	blocks := []Block{
		headerBlock("✅ Document processed"),
		sectionFields(
			mrkdwn("*Vendor:*\n"+vendor),
			mrkdwn("*Amount:*\n"+amount),
			mrkdwn("*Invoice number:*\n"+invoiceOrFallback(doc.InvoiceNumber)),
			mrkdwn("*Date:*\n"+format.Date(doc.CreatedAt)),
		),
	}
	blocks = appendDocumentContext(blocks, doc, company, now)
	blocks = append(blocks, actionsBlock(
		linkButton("View document", b.documentURL(doc.ID), ""),
	))

	return assemble(model.KindDocumentProcessed,
		fmt.Sprintf("Document processed: %s (%s)", vendor, amount), blocks)
}

// DocumentUpdated builds the notification for a document that changed after
// processing.
func (b *Builder) DocumentUpdated(doc model.Document, company *model.Company, now time.Time) Payload {
	vendor := vendorOrFallback(doc.VendorName, "Processing...")

	blocks := []Block{
		headerBlock("✏️ Document updated"),
		sectionFields(
			mrkdwn("*Vendor:*\n"+vendor),
			mrkdwn("*Amount:*\n"+format.Amount(doc.Total, doc.Currency)),
			mrkdwn("*Invoice number:*\n"+invoiceOrFallback(doc.InvoiceNumber)),
			mrkdwn("*Date:*\n"+format.Date(doc.UpdatedAt)),
		),
	}
	blocks = appendDocumentContext(blocks, doc, company, now)
	blocks = append(blocks, actionsBlock(
		linkButton("View document", b.documentURL(doc.ID), ""),
	))

	return assemble(model.KindDocumentUpdated, "Document updated: "+vendor, blocks)
}

// ExportCompleted builds the notification for a finished export. The download
// button only appears when the export carries a URL; the exports overview
// button is always present.
func (b *Builder) ExportCompleted(export model.Export, now time.Time) Payload {
	blocks := []Block{
		headerBlock("📦 Export completed"),
		sectionText(fmt.Sprintf("*%s document(s)* exported as *%s*",
			format.Count(export.DocumentCount), strings.ToUpper(export.Format))),
	}
	if export.CompletedAt != nil {
		blocks = append(blocks, contextBlock("Completed "+format.RelativeTime(*export.CompletedAt, now)))
	}

	var buttons []Button
	if export.DownloadURL != "" {
		buttons = append(buttons, linkButton("Download", export.DownloadURL, "primary"))
	}
	buttons = append(buttons, linkButton("View all exports", b.appBaseURL+"/exports", ""))
	blocks = append(blocks, actionsBlock(buttons...))

	fallback := fmt.Sprintf("Export completed: %d document(s) (%s)",
		export.DocumentCount, strings.ToUpper(export.Format))
	return assemble(model.KindExportCompleted, fallback, blocks)
}

// DailySummary builds the scheduled activity digest from aggregated stats.
func (b *Builder) DailySummary(stats model.DailySummaryStats, date time.Time) Payload {
	blocks := []Block{
		headerBlock("📊 Daily summary for " + format.Date(date)),
		sectionFields(
			mrkdwn("*Documents processed:*\n"+format.Count(stats.ProcessedCount)),
			mrkdwn("*Total amount:*\n"+format.Amount(stats.TotalAmount, stats.Currency)),
			mrkdwn("*Pending review:*\n"+format.Count(stats.PendingCount)),
			mrkdwn("*Top vendor:*\n"+topVendorLine(stats)),
		),
	}
	if line := topCategoriesLine(stats); line != "" {
		blocks = append(blocks, contextBlock(line))
	}
	blocks = append(blocks, actionsBlock(
		linkButton("Open dashboard", b.appBaseURL+"/dashboard", ""),
	))

	fallback := fmt.Sprintf("Daily summary: %d document(s) processed", stats.ProcessedCount)
	return assemble(model.KindDailySummary, fallback, blocks)
}

// TestConnection builds the payload sent when a user tests their webhook.
func (b *Builder) TestConnection() Payload {
	blocks := []Block{
		sectionText("👋 *Webhook test successful!* Notifications from herald will appear in this channel."),
	}
	return assemble(model.KindTestConnection, "Webhook test from herald", blocks)
}

// Decorate applies the installation's channel override and sender identity to
// a built payload.
func Decorate(p Payload, settings model.Settings) Payload {
	p.Channel = settings.Channel
	p.Username = settings.Username
	p.IconEmoji = settings.IconEmoji
	return p
}

func assemble(kind model.NotificationKind, fallback string, blocks []Block) Payload {
	return Payload{
		Text: fallback,
		Attachments: []Attachment{
			{Color: ColorFor(kind).Hex(), Blocks: blocks},
		},
	}
}

// appendDocumentContext adds the shared contextual annotations: net/VAT
// breakdown, due-date warning and company line. Each is omitted entirely when
// its data is absent.
func appendDocumentContext(blocks []Block, doc model.Document, company *model.Company, now time.Time) []Block {
	if doc.NetAmount != nil && doc.VATAmount != nil {
		blocks = append(blocks, contextBlock(fmt.Sprintf("Net %s · VAT %s",
			format.Amount(*doc.NetAmount, doc.Currency),
			format.Amount(*doc.VATAmount, doc.Currency))))
	}
	if warning := dueWarning(doc, now); warning != "" {
		blocks = append(blocks, contextBlock(warning))
	}
	if company != nil && company.Name != "" {
		blocks = append(blocks, contextBlock("🏢 "+format.EscapeText(company.Name)))
	}
	return blocks
}

// dueWarning returns the due-date annotation when the document is due within
// the warning window, inclusive on both ends. Past-due and far-future dates
// produce nothing.
func dueWarning(doc model.Document, now time.Time) string {
	if doc.DueDate == nil {
		return ""
	}
	days := format.DaysUntil(*doc.DueDate, now)
	if days < 0 || days > dueWarningWindowDays {
		return ""
	}
	switch days {
	case 0:
		return "⚠️ *Due today!*"
	case 1:
		return "⚠️ Due in 1 day"
	default:
		return fmt.Sprintf("⚠️ Due in %d days", days)
	}
}

func topVendorLine(stats model.DailySummaryStats) string {
	if stats.TopVendor == "" {
		return "n/a"
	}
	unit := "documents"
	if stats.TopVendorCount == 1 {
		unit = "document"
	}
	return fmt.Sprintf("%s (%d %s)", format.EscapeText(stats.TopVendor), stats.TopVendorCount, unit)
}

// topCategoriesLine renders up to the five busiest categories, highest count
// first, count ties resolved by first-encounter order. Empty when the day had
// no category data.
func topCategoriesLine(stats model.DailySummaryStats) string {
	if len(stats.CategoryCounts) == 0 {
		return ""
	}

	order := make(map[string]int, len(stats.CategoryOrder))
	for i, name := range stats.CategoryOrder {
		order[name] = i
	}

	names := make([]string, 0, len(stats.CategoryCounts))
	for name := range stats.CategoryCounts {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		ci, cj := stats.CategoryCounts[names[i]], stats.CategoryCounts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return order[names[i]] < order[names[j]]
	})

	if len(names) > 5 {
		names = names[:5]
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", format.EscapeText(name), stats.CategoryCounts[name]))
	}
	return "Top categories: " + strings.Join(parts, " · ")
}

func (b *Builder) documentURL(id string) string {
	return b.appBaseURL + "/documents/" + id
}

func vendorOrFallback(vendor, fallback string) string {
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return fallback
	}
	return format.EscapeText(vendor)
}

func invoiceOrFallback(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return "N/A"
	}
	return format.EscapeText(number)
}
