// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package atomstore

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bureau-foundation/atomtracker/lib/atom"
	"github.com/bureau-foundation/atomtracker/lib/netutil"
)

// Handler serves the atom collection over HTTP:
//
//	GET  /atoms       list every atom
//	POST /atoms       create an atom, 201 with the stored record
//	PUT  /atoms/{id}  replace an atom, 200 with the stored record
//
// Failures carry a JSON body of the form {"error": "..."}.
type Handler struct {
	store   *Store
	logger  *slog.Logger
	metrics *Metrics
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMetrics instruments every request and serves GET /metrics.
func WithMetrics(metrics *Metrics) HandlerOption {
	return func(handler *Handler) { handler.metrics = metrics }
}

// NewHandler creates a Handler over store.
func NewHandler(store *Store, logger *slog.Logger, options ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	handler := &Handler{store: store, logger: logger}
	for _, option := range options {
		option(handler)
	}
	return handler
}

// Router returns a chi router with the atom routes and request
// logging installed, plus /metrics when metrics are configured.
func (handler *Handler) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(handler.logRequests)
	if handler.metrics != nil {
		router.Use(handler.metrics.instrument)
		router.Method(http.MethodGet, "/metrics", handler.metrics.Handler())
	}
	handler.Register(router)
	return router
}

// Register adds the atom routes to router.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/atoms", handler.handleList)
	router.Post("/atoms", handler.handleCreate)
	router.Put("/atoms/{id}", handler.handleUpdate)
}

func (handler *Handler) handleList(writer http.ResponseWriter, request *http.Request) {
	records := handler.store.List()
	if records == nil {
		records = []atom.Record{}
	}
	handler.writeJSON(writer, request, http.StatusOK, records)
}

func (handler *Handler) handleCreate(writer http.ResponseWriter, request *http.Request) {
	record, ok := handler.decodeRecord(writer, request)
	if !ok {
		return
	}
	created, err := handler.store.Create(record)
	if err != nil {
		handler.writeStoreError(writer, request, err)
		return
	}
	handler.metrics.recordMutation("create")
	handler.writeJSON(writer, request, http.StatusCreated, created)
}

func (handler *Handler) handleUpdate(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	record, ok := handler.decodeRecord(writer, request)
	if !ok {
		return
	}
	updated, err := handler.store.Update(id, record)
	if err != nil {
		handler.writeStoreError(writer, request, err)
		return
	}
	handler.metrics.recordMutation("update")
	handler.writeJSON(writer, request, http.StatusOK, updated)
}

func (handler *Handler) decodeRecord(writer http.ResponseWriter, request *http.Request) (atom.Record, bool) {
	var record atom.Record
	body := http.MaxBytesReader(writer, request.Body, netutil.MaxBodySize)
	if err := json.NewDecoder(body).Decode(&record); err != nil {
		handler.logger.WarnContext(request.Context(), "invalid atom request body",
			"request_id", middleware.GetReqID(request.Context()),
			"error", err,
		)
		handler.writeError(writer, request, http.StatusBadRequest, "invalid request body")
		return atom.Record{}, false
	}
	return record, true
}

func (handler *Handler) writeStoreError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalid):
		handler.writeError(writer, request, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		handler.writeError(writer, request, http.StatusNotFound, err.Error())
	default:
		handler.logger.ErrorContext(request.Context(), "atom store failure",
			"request_id", middleware.GetReqID(request.Context()),
			"error", err,
		)
		handler.writeError(writer, request, http.StatusInternalServerError, "internal error")
	}
}

func (handler *Handler) writeError(writer http.ResponseWriter, request *http.Request, status int, message string) {
	handler.writeJSON(writer, request, status, map[string]string{"error": message})
}

func (handler *Handler) writeJSON(writer http.ResponseWriter, request *http.Request, status int, value any) {
	err := netutil.WriteJSON(writer, status, value)
	if err == nil {
		return
	}
	level := slog.LevelWarn
	if netutil.IsExpectedCloseError(err) {
		level = slog.LevelDebug
	}
	handler.logger.Log(request.Context(), level, "writing response failed",
		"request_id", middleware.GetReqID(request.Context()),
		"error", err,
	)
}

// logRequests logs one line per request at Info with the status and
// elapsed time.
func (handler *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		started := time.Now()
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(wrapped, request)
		handler.logger.InfoContext(request.Context(), "atom request",
			"request_id", middleware.GetReqID(request.Context()),
			"method", request.Method,
			"path", request.URL.Path,
			"status", wrapped.Status(),
			"duration", time.Since(started),
		)
	})
}
