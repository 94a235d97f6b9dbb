package message

import "github.com/herald-hq/herald/internal/model"

// Color is the status side-marker token carried by every message.
type Color string

// Status color tokens.
const (
	ColorSuccess Color = "success"
	ColorWarning Color = "warning"
	ColorError   Color = "error"
	ColorInfo    Color = "info"
)

var colorHex = map[Color]string{
	ColorSuccess: "#2eb67d",
	ColorWarning: "#ecb22e",
	ColorError:   "#e01e5a",
	ColorInfo:    "#36c5f0",
}

// Hex returns the attachment color value for the token.
func (c Color) Hex() string {
	if hex, ok := colorHex[c]; ok {
		return hex
	}
	return colorHex[ColorInfo]
}

// ColorFor maps a notification kind to its status color token.
func ColorFor(kind model.NotificationKind) Color {
	switch kind {
	case model.KindDocumentProcessed, model.KindExportCompleted:
		return ColorSuccess
	case model.KindDocumentCreated, model.KindDocumentUpdated,
		model.KindDailySummary, model.KindTestConnection:
		return ColorInfo
	default:
		return ColorInfo
	}
}
