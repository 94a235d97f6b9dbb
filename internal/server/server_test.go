package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-hq/herald/internal/model"
)

type stubHandlers struct {
	lastKind   model.NotificationKind
	lastDocEvt model.DocumentEvent
	result     model.HandlerResult
}

func (s *stubHandlers) DocumentCreated(_ context.Context, evt model.DocumentEvent, _ model.Settings) model.HandlerResult {
	s.lastKind, s.lastDocEvt = model.KindDocumentCreated, evt
	return s.result
}

func (s *stubHandlers) DocumentProcessed(_ context.Context, evt model.DocumentEvent, _ model.Settings) model.HandlerResult {
	s.lastKind, s.lastDocEvt = model.KindDocumentProcessed, evt
	return s.result
}

func (s *stubHandlers) DocumentUpdated(_ context.Context, evt model.DocumentEvent, _ model.Settings) model.HandlerResult {
	s.lastKind, s.lastDocEvt = model.KindDocumentUpdated, evt
	return s.result
}

func (s *stubHandlers) ExportCompleted(_ context.Context, _ model.ExportEvent, _ model.Settings) model.HandlerResult {
	s.lastKind = model.KindExportCompleted
	return s.result
}

func (s *stubHandlers) DailySummary(_ context.Context, _ model.ScheduledEvent, _ model.Settings) model.HandlerResult {
	s.lastKind = model.KindDailySummary
	return s.result
}

func (s *stubHandlers) TestConnection(_ context.Context, _ model.TestAction, _ model.Settings) model.HandlerResult {
	s.lastKind = model.KindTestConnection
	return s.result
}

type stubSettings struct {
	err       error
	lastSpace string
}

func (s *stubSettings) For(_ context.Context, spaceID string) (model.Settings, error) {
	s.lastSpace = spaceID
	return model.Settings{WebhookURL: "https://hooks.slack.com/services/T1/B2/x3"}, s.err
}

func TestServer_DocumentEvent(t *testing.T) {
	handlers := &stubHandlers{result: model.HandlerResult{
		Kind: model.KindDocumentProcessed, Success: true, DocumentID: "doc-1",
	}}
	settings := &stubSettings{}
	srv := httptest.NewServer(New(handlers, settings))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/events/document.processed", "application/json",
		strings.NewReader(`{"documentId": "doc-1", "spaceId": "space-1"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.KindDocumentProcessed, handlers.lastKind)
	assert.Equal(t, "doc-1", handlers.lastDocEvt.DocumentID)
	assert.Equal(t, "space-1", settings.lastSpace)

	var result model.HandlerResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, "doc-1", result.DocumentID)
}

func TestServer_RoutesDispatchToMatchingHandler(t *testing.T) {
	tests := []struct {
		path     string
		body     string
		wantKind model.NotificationKind
	}{
		{path: "/events/document.created", body: `{"documentId":"d","spaceId":"s"}`, wantKind: model.KindDocumentCreated},
		{path: "/events/document.updated", body: `{"documentId":"d","spaceId":"s"}`, wantKind: model.KindDocumentUpdated},
		{path: "/events/export.completed", body: `{"exportId":"e","spaceId":"s"}`, wantKind: model.KindExportCompleted},
		{path: "/events/daily.summary", body: `{"spaceId":"s"}`, wantKind: model.KindDailySummary},
		{path: "/actions/test", body: `{"spaceId":"s","userId":"u"}`, wantKind: model.KindTestConnection},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			handlers := &stubHandlers{}
			srv := httptest.NewServer(New(handlers, &stubSettings{}))
			defer srv.Close()

			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantKind, handlers.lastKind)
		})
	}
}

func TestServer_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(New(&stubHandlers{}, &stubSettings{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/events/document.created", "application/json",
		strings.NewReader(`{not json`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_SettingsFailure(t *testing.T) {
	srv := httptest.NewServer(New(&stubHandlers{}, &stubSettings{err: errors.New("boom")}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/events/document.created", "application/json",
		strings.NewReader(`{"documentId":"d","spaceId":"s"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_Healthz(t *testing.T) {
	srv := httptest.NewServer(New(&stubHandlers{}, &stubSettings{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
