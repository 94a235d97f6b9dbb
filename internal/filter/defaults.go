// Package filter decides whether a given event should produce a notification.
package filter

import "github.com/herald-hq/herald/internal/model"

// kindDefaults holds the documented default for each notification toggle,
// applied only when the installation leaves the toggle unset. Updated-document
// notifications default off: re-extraction fires them far too often to be on
// by default.
var kindDefaults = map[model.NotificationKind]bool{
	model.KindDocumentCreated:   true,
	model.KindDocumentProcessed: true,
	model.KindDocumentUpdated:   false,
	model.KindExportCompleted:   true,
	model.KindDailySummary:      true,
}

// IsNotificationEnabled resolves the toggle for kind against the installation
// settings. An unset toggle (nil) falls back to the documented default; an
// explicit false always wins over a true default.
func IsNotificationEnabled(kind model.NotificationKind, settings model.Settings) bool {
	var configured *bool
	switch kind {
	case model.KindDocumentCreated:
		configured = settings.NotifyOnCreated
	case model.KindDocumentProcessed:
		configured = settings.NotifyOnProcessed
	case model.KindDocumentUpdated:
		configured = settings.NotifyOnUpdated
	case model.KindExportCompleted:
		configured = settings.NotifyOnExport
	case model.KindDailySummary:
		configured = settings.DailySummary
	case model.KindTestConnection:
		// A user-triggered test is never gated by toggles.
		return true
	}

	if configured != nil {
		return *configured
	}
	return kindDefaults[kind]
}
