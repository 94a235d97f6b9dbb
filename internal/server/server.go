// Package server exposes the HTTP surface the host platform posts events to.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/herald-hq/herald/internal/model"
)

// EventHandlers is the orchestration boundary the server dispatches into.
type EventHandlers interface {
	DocumentCreated(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult
	DocumentProcessed(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult
	DocumentUpdated(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult
	ExportCompleted(ctx context.Context, evt model.ExportEvent, settings model.Settings) model.HandlerResult
	DailySummary(ctx context.Context, evt model.ScheduledEvent, settings model.Settings) model.HandlerResult
	TestConnection(ctx context.Context, action model.TestAction, settings model.Settings) model.HandlerResult
}

// SettingsSource resolves an installation's notification settings.
type SettingsSource interface {
	For(ctx context.Context, spaceID string) (model.Settings, error)
}

// Server routes inbound event payloads to their handlers. It implements
// http.Handler.
type Server struct {
	handlers EventHandlers
	settings SettingsSource
	router   chi.Router
}

// New builds the event server.
func New(handlers EventHandlers, settings SettingsSource) *Server {
	s := &Server{
		handlers: handlers,
		settings: settings,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/document.created", s.documentEvent(s.handlers.DocumentCreated))
		r.Post("/document.processed", s.documentEvent(s.handlers.DocumentProcessed))
		r.Post("/document.updated", s.documentEvent(s.handlers.DocumentUpdated))
		r.Post("/export.completed", s.exportEvent)
		r.Post("/daily.summary", s.scheduledEvent)
	})
	r.Post("/actions/test", s.testAction)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type documentHandlerFunc func(ctx context.Context, evt model.DocumentEvent, settings model.Settings) model.HandlerResult

func (s *Server) documentEvent(handle documentHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var evt model.DocumentEvent
		if !decodeEvent(w, r, &evt) {
			return
		}
		settings, ok := s.settingsFor(w, r, evt.SpaceID)
		if !ok {
			return
		}
		writeResult(w, handle(r.Context(), evt, settings))
	}
}

func (s *Server) exportEvent(w http.ResponseWriter, r *http.Request) {
	var evt model.ExportEvent
	if !decodeEvent(w, r, &evt) {
		return
	}
	settings, ok := s.settingsFor(w, r, evt.SpaceID)
	if !ok {
		return
	}
	writeResult(w, s.handlers.ExportCompleted(r.Context(), evt, settings))
}

func (s *Server) scheduledEvent(w http.ResponseWriter, r *http.Request) {
	var evt model.ScheduledEvent
	if !decodeEvent(w, r, &evt) {
		return
	}
	settings, ok := s.settingsFor(w, r, evt.SpaceID)
	if !ok {
		return
	}
	writeResult(w, s.handlers.DailySummary(r.Context(), evt, settings))
}

func (s *Server) testAction(w http.ResponseWriter, r *http.Request) {
	var action model.TestAction
	if !decodeEvent(w, r, &action) {
		return
	}
	settings, ok := s.settingsFor(w, r, action.SpaceID)
	if !ok {
		return
	}
	writeResult(w, s.handlers.TestConnection(r.Context(), action, settings))
}

func (s *Server) settingsFor(w http.ResponseWriter, r *http.Request, spaceID string) (model.Settings, bool) {
	settings, err := s.settings.For(r.Context(), spaceID)
	if err != nil {
		slog.Error("Failed to resolve installation settings",
			"space_id", spaceID,
			"error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve installation settings")
		return model.Settings{}, false
	}
	return settings, true
}

func decodeEvent(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event payload: "+err.Error())
		return false
	}
	return true
}

func writeResult(w http.ResponseWriter, result model.HandlerResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Failed to encode handler result", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
