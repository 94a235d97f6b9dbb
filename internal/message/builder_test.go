package message

import (
	"testing"
	"time"

	"github.com/herald-hq/herald/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func testDoc() model.Document {
	return model.Document{
		ID:            "doc-1",
		VendorName:    "Amazon Web Services",
		Total:         120.5,
		Currency:      "EUR",
		InvoiceNumber: "INV-2025-001",
		CreatedAt:     time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
		UpdatedAt:     testNow,
	}
}

// contextLines collects the text of every context block in the payload.
func contextLines(t *testing.T, p Payload) []string {
	t.Helper()
	require.Len(t, p.Attachments, 1)

	var lines []string
	for _, block := range p.Attachments[0].Blocks {
		if block.Type != "context" {
			continue
		}
		for _, el := range block.Elements {
			text, ok := el.(TextObject)
			require.True(t, ok, "context elements must be text objects")
			lines = append(lines, text.Text)
		}
	}
	return lines
}

// buttons collects every button in the payload's actions blocks.
func buttons(t *testing.T, p Payload) []Button {
	t.Helper()
	require.Len(t, p.Attachments, 1)

	var out []Button
	for _, block := range p.Attachments[0].Blocks {
		if block.Type != "actions" {
			continue
		}
		for _, el := range block.Elements {
			b, ok := el.(Button)
			require.True(t, ok, "actions elements must be buttons")
			out = append(out, b)
		}
	}
	return out
}

func fieldTexts(t *testing.T, p Payload) []string {
	t.Helper()
	require.Len(t, p.Attachments, 1)

	var out []string
	for _, block := range p.Attachments[0].Blocks {
		for _, f := range block.Fields {
			out = append(out, f.Text)
		}
	}
	return out
}

func TestDocumentProcessed(t *testing.T) {
	b := NewBuilder("https://app.example.com")

	t.Run("full document", func(t *testing.T) {
		p := b.DocumentProcessed(testDoc(), nil, testNow)

		assert.Equal(t, "Document processed: Amazon Web Services (€120.50)", p.Text)
		require.Len(t, p.Attachments, 1)
		assert.Equal(t, ColorSuccess.Hex(), p.Attachments[0].Color)

		fields := fieldTexts(t, p)
		assert.Contains(t, fields, "*Vendor:*\nAmazon Web Services")
		assert.Contains(t, fields, "*Amount:*\n€120.50")
		assert.Contains(t, fields, "*Invoice number:*\nINV-2025-001")
		assert.Contains(t, fields, "*Date:*\nMar 9, 2025")

		btns := buttons(t, p)
		require.Len(t, btns, 1)
		assert.Equal(t, "https://app.example.com/documents/doc-1", btns[0].URL)
	})

	t.Run("vendor fallback is Unknown", func(t *testing.T) {
		doc := testDoc()
		doc.VendorName = ""
		p := b.DocumentProcessed(doc, nil, testNow)
		assert.Contains(t, fieldTexts(t, p), "*Vendor:*\nUnknown")
	})

	t.Run("invoice number fallback is N/A", func(t *testing.T) {
		doc := testDoc()
		doc.InvoiceNumber = ""
		p := b.DocumentProcessed(doc, nil, testNow)
		assert.Contains(t, fieldTexts(t, p), "*Invoice number:*\nN/A")
	})

	t.Run("vendor text is escaped", func(t *testing.T) {
		doc := testDoc()
		doc.VendorName = "Johnson & Sons"
		p := b.DocumentProcessed(doc, nil, testNow)
		assert.Contains(t, fieldTexts(t, p), "*Vendor:*\nJohnson &amp; Sons")
	})
}

func TestDocumentUpdated_VendorFallback(t *testing.T) {
	b := NewBuilder("https://app.example.com")
	doc := testDoc()
	doc.VendorName = ""

	p := b.DocumentUpdated(doc, nil, testNow)

	assert.Contains(t, fieldTexts(t, p), "*Vendor:*\nProcessing...")
	require.Len(t, p.Attachments, 1)
	assert.Equal(t, ColorInfo.Hex(), p.Attachments[0].Color)
}

func TestNetVATBreakdown(t *testing.T) {
	b := NewBuilder("https://app.example.com")

	tests := []struct {
		net      *float64
		vat      *float64
		name     string
		wantLine bool
	}{
		{name: "both present", net: floatPtr(100), vat: floatPtr(20.5), wantLine: true},
		{name: "net only", net: floatPtr(100), wantLine: false},
		{name: "vat only", vat: floatPtr(20.5), wantLine: false},
		{name: "neither", wantLine: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc()
			doc.NetAmount = tt.net
			doc.VATAmount = tt.vat

			lines := contextLines(t, b.DocumentProcessed(doc, nil, testNow))
			if tt.wantLine {
				assert.Contains(t, lines, "Net €100.00 · VAT €20.50")
			} else {
				assert.Empty(t, lines)
			}
		})
	}
}

func TestDueWarningBoundaries(t *testing.T) {
	b := NewBuilder("https://app.example.com")

	tests := []struct {
		name     string
		due      time.Time
		wantLine string
	}{
		{name: "due today", due: testNow.Add(2 * time.Hour), wantLine: "⚠️ *Due today!*"},
		{name: "due in one day", due: testNow.AddDate(0, 0, 1), wantLine: "⚠️ Due in 1 day"},
		{name: "due in seven days", due: testNow.AddDate(0, 0, 7), wantLine: "⚠️ Due in 7 days"},
		{name: "due in eight days has no warning", due: testNow.AddDate(0, 0, 8)},
		{name: "past due has no warning", due: testNow.AddDate(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc()
			doc.DueDate = timePtr(tt.due)

			lines := contextLines(t, b.DocumentProcessed(doc, nil, testNow))
			if tt.wantLine == "" {
				assert.Empty(t, lines)
			} else {
				assert.Equal(t, []string{tt.wantLine}, lines)
			}
		})
	}
}

func TestCompanyContextLine(t *testing.T) {
	b := NewBuilder("https://app.example.com")

	t.Run("present company adds one line", func(t *testing.T) {
		company := &model.Company{ID: "c-1", Name: "Acme GmbH"}
		lines := contextLines(t, b.DocumentProcessed(testDoc(), company, testNow))
		assert.Equal(t, []string{"🏢 Acme GmbH"}, lines)
	})

	t.Run("absent company adds nothing", func(t *testing.T) {
		lines := contextLines(t, b.DocumentProcessed(testDoc(), nil, testNow))
		assert.Empty(t, lines)
	})
}

func TestExportCompleted(t *testing.T) {
	b := NewBuilder("https://app.example.com")

	export := model.Export{
		ID:            "exp-1",
		Format:        "datev",
		Status:        "completed",
		DocumentCount: 42,
		CompletedAt:   timePtr(testNow.Add(-10 * time.Minute)),
	}

	t.Run("with download URL shows both buttons", func(t *testing.T) {
		e := export
		e.DownloadURL = "https://files.example.com/exp-1.zip"

		p := b.ExportCompleted(e, testNow)
		assert.Equal(t, "Export completed: 42 document(s) (DATEV)", p.Text)
		assert.Equal(t, ColorSuccess.Hex(), p.Attachments[0].Color)

		btns := buttons(t, p)
		require.Len(t, btns, 2)
		assert.Equal(t, "Download", btns[0].Text.Text)
		assert.Equal(t, "primary", btns[0].Style)
		assert.Equal(t, "https://files.example.com/exp-1.zip", btns[0].URL)
		assert.Equal(t, "View all exports", btns[1].Text.Text)
		assert.Equal(t, "https://app.example.com/exports", btns[1].URL)
	})

	t.Run("without download URL shows only the overview button", func(t *testing.T) {
		p := b.ExportCompleted(export, testNow)

		btns := buttons(t, p)
		require.Len(t, btns, 1)
		assert.Equal(t, "View all exports", btns[0].Text.Text)
	})

	t.Run("completed time renders relative", func(t *testing.T) {
		lines := contextLines(t, b.ExportCompleted(export, testNow))
		assert.Equal(t, []string{"Completed 10 minutes ago"}, lines)
	})
}

func TestDailySummary(t *testing.T) {
	b := NewBuilder("https://app.example.com")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("renders stats fields", func(t *testing.T) {
		stats := model.DailySummaryStats{
			ProcessedCount: 12,
			TotalAmount:    3400.25,
			Currency:       "EUR",
			PendingCount:   3,
			TopVendor:      "Amazon",
			TopVendorCount: 5,
			CategoryCounts: map[string]int{"Travel": 4},
			CategoryOrder:  []string{"Travel"},
		}

		p := b.DailySummary(stats, date)
		assert.Equal(t, "Daily summary: 12 document(s) processed", p.Text)
		assert.Equal(t, ColorInfo.Hex(), p.Attachments[0].Color)

		fields := fieldTexts(t, p)
		assert.Contains(t, fields, "*Documents processed:*\n12")
		assert.Contains(t, fields, "*Total amount:*\n€3,400.25")
		assert.Contains(t, fields, "*Pending review:*\n3")
		assert.Contains(t, fields, "*Top vendor:*\nAmazon (5 documents)")
	})

	t.Run("top five categories by count with encounter-order ties", func(t *testing.T) {
		stats := model.DailySummaryStats{
			ProcessedCount: 20,
			Currency:       "EUR",
			CategoryCounts: map[string]int{
				"Travel": 5, "Office": 5, "Hosting": 7,
				"Meals": 2, "Software": 3, "Hardware": 1,
			},
			CategoryOrder: []string{"Office", "Travel", "Hosting", "Software", "Meals", "Hardware"},
		}

		lines := contextLines(t, b.DailySummary(stats, date))
		require.Len(t, lines, 1)
		// Office ties with Travel at 5 but was encountered first.
		assert.Equal(t,
			"Top categories: Hosting: 7 · Office: 5 · Travel: 5 · Software: 3 · Meals: 2",
			lines[0])
	})

	t.Run("category line omitted when no data", func(t *testing.T) {
		stats := model.DailySummaryStats{ProcessedCount: 1, Currency: "EUR"}
		lines := contextLines(t, b.DailySummary(stats, date))
		assert.Empty(t, lines)
	})

	t.Run("missing top vendor renders n/a", func(t *testing.T) {
		stats := model.DailySummaryStats{ProcessedCount: 1, Currency: "EUR"}
		p := b.DailySummary(stats, date)
		assert.Contains(t, fieldTexts(t, p), "*Top vendor:*\nn/a")
	})
}

func TestTestConnection(t *testing.T) {
	p := NewBuilder("https://app.example.com").TestConnection()

	assert.Equal(t, "Webhook test from herald", p.Text)
	require.Len(t, p.Attachments, 1)
	assert.Equal(t, ColorInfo.Hex(), p.Attachments[0].Color)
}

func TestDecorate(t *testing.T) {
	settings := model.Settings{
		Channel:   "#finance",
		Username:  "herald",
		IconEmoji: ":bell:",
	}

	p := Decorate(Payload{Text: "hi"}, settings)

	assert.Equal(t, "#finance", p.Channel)
	assert.Equal(t, "herald", p.Username)
	assert.Equal(t, ":bell:", p.IconEmoji)
}
