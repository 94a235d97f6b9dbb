package model

import "time"

// DocumentEvent is the host payload for document created/processed/updated events.
type DocumentEvent struct {
	DocumentID string `json:"documentId"`
	SpaceID    string `json:"spaceId"`
}

// ExportEvent is the host payload for a completed export. It carries enough to
// build a minimal notification even when the export record cannot be fetched.
type ExportEvent struct {
	ExportID      string `json:"exportId"`
	SpaceID       string `json:"spaceId"`
	Format        string `json:"format"`
	DocumentCount int    `json:"documentCount"`
}

// ScheduledEvent is the host payload for the daily summary tick.
type ScheduledEvent struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	SpaceID     string    `json:"spaceId"`
}

// TestAction is the payload for a user-triggered webhook connection test.
type TestAction struct {
	SpaceID string `json:"spaceId"`
	UserID  string `json:"userId"`
}
