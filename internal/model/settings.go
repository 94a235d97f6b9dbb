package model

// NotificationKind identifies one of the notification types a handler can emit.
type NotificationKind string

// Notification kind constants.
const (
	KindDocumentCreated   NotificationKind = "document_created"
	KindDocumentProcessed NotificationKind = "document_processed"
	KindDocumentUpdated   NotificationKind = "document_updated"
	KindExportCompleted   NotificationKind = "export_completed"
	KindDailySummary      NotificationKind = "daily_summary"
	KindTestConnection    NotificationKind = "test_connection"
)

// Settings holds one installation's notification configuration. The host
// supplies it per invocation; this core never mutates it.
//
// The five Notify* toggles are tri-state: nil means "unset, use the documented
// default for that kind", which is not the same as an explicit false.
type Settings struct {
	NotifyOnCreated       *bool    `mapstructure:"notify_on_created" json:"notifyOnCreated,omitempty"`
	NotifyOnProcessed     *bool    `mapstructure:"notify_on_processed" json:"notifyOnProcessed,omitempty"`
	NotifyOnUpdated       *bool    `mapstructure:"notify_on_updated" json:"notifyOnUpdated,omitempty"`
	NotifyOnExport        *bool    `mapstructure:"notify_on_export" json:"notifyOnExport,omitempty"`
	DailySummary          *bool    `mapstructure:"daily_summary" json:"dailySummary,omitempty"`
	WebhookURL            string   `mapstructure:"webhook_url" json:"webhookUrl"`
	Channel               string   `mapstructure:"channel" json:"channel,omitempty"`
	Username              string   `mapstructure:"username" json:"username,omitempty"`
	IconEmoji             string   `mapstructure:"icon_emoji" json:"iconEmoji,omitempty"`
	MinimumAmountCurrency string   `mapstructure:"minimum_amount_currency" json:"minimumAmountCurrency,omitempty"`
	VendorFilter          []string `mapstructure:"vendor_filter" json:"vendorFilter,omitempty"`
	CategoryFilter        []string `mapstructure:"category_filter" json:"categoryFilter,omitempty"`
	MinimumAmount         float64  `mapstructure:"minimum_amount" json:"minimumAmount,omitempty"`
}
