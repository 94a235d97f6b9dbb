package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/herald-hq/herald/internal/model"
)

// DeliveryRecord is one logged handler outcome.
type DeliveryRecord struct {
	CreatedAt  time.Time
	SpaceID    string
	Kind       model.NotificationKind
	DocumentID string
	ExportID   string
	VendorName string
	Reason     string
	Error      string
	ID         int64
	Success    bool
	Skipped    bool
}

// Record logs a handler result. Implements handler.ResultRecorder.
func (s *SQLiteStorage) Record(ctx context.Context, spaceID string, result model.HandlerResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO delivery_log
			(space_id, kind, document_id, export_id, vendor_name, success, skipped, reason, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		spaceID,
		string(result.Kind),
		result.DocumentID,
		result.ExportID,
		result.VendorName,
		result.Success,
		result.Skipped,
		result.Reason,
		result.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record delivery result: %w", err)
	}
	return nil
}

// RecentResults returns the newest delivery records for an installation,
// newest first.
func (s *SQLiteStorage) RecentResults(ctx context.Context, spaceID string, limit int) ([]DeliveryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, space_id, kind, document_id, export_id, vendor_name,
		       success, skipped, reason, error, created_at
		FROM delivery_log
		WHERE space_id = ?
		ORDER BY id DESC
		LIMIT ?`, spaceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []DeliveryRecord
	for rows.Next() {
		var r DeliveryRecord
		var kind string
		if err := rows.Scan(&r.ID, &r.SpaceID, &kind, &r.DocumentID, &r.ExportID,
			&r.VendorName, &r.Success, &r.Skipped, &r.Reason, &r.Error, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		r.Kind = model.NotificationKind(kind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delivery log: %w", err)
	}

	return records, nil
}
