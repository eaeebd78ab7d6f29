package ui

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lord9tools/bosswatch/pkg/core"
	"github.com/lord9tools/bosswatch/pkg/scheduler"
)

// Handler creates an http.Handler for the boss timer dashboard.
// It serves the HTML page, the JSON API, the websocket tick feed and,
// when metrics are configured, the Prometheus endpoint.
//
// Usage:
//
//	mux.Handle("/", ui.Handler(sched, ref, ui.WithAdminCredential(secret)))
func Handler(sched *scheduler.SpawnScheduler, ref *scheduler.Refresher, opts ...Option) http.Handler {
	cfg := &config{
		title:  "Boss Timer",
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	h := &handler{
		sched:  sched,
		ref:    ref,
		cfg:    cfg,
		logger: cfg.logger.With().Str("component", "ui").Logger(),
	}

	r := chi.NewRouter()
	r.Get("/", h.handleDashboard)
	r.Get("/api/spawns", h.handleSpawns)
	r.Get("/api/next", h.handleNext)
	r.Get("/api/history", h.handleHistory)
	r.Post("/api/edit", h.handleEdit)
	r.Get("/ws", h.handleWS)
	if cfg.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.metrics.registry, promhttp.HandlerOpts{}))
	}

	if cfg.middleware != nil {
		return cfg.middleware(r)
	}
	return r
}

type handler struct {
	sched  *scheduler.SpawnScheduler
	ref    *scheduler.Refresher
	cfg    *config
	logger zerolog.Logger
}

func (h *handler) snapshot() (*scheduler.Snapshot, error) {
	if h.ref != nil {
		return h.ref.Current()
	}
	return h.sched.Project(time.Now().In(h.sched.Location()))
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	view := struct {
		Title   string
		CanEdit bool
		snapshotView
	}{
		Title:        h.cfg.title,
		CanEdit:      h.cfg.credential != "",
		snapshotView: newSnapshotView(snap),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, view); err != nil {
		h.logger.Error().Err(err).Msg("render dashboard")
	}
}

func (h *handler) handleSpawns(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSnapshotView(snap))
}

func (h *handler) handleNext(w http.ResponseWriter, r *http.Request) {
	next, err := h.sched.NextGlobalSpawn(time.Now().In(h.sched.Location()))
	if err != nil {
		if errors.Is(err, core.ErrNoFieldTimers) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSpawnView(next))
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}
	entries, err := h.sched.History(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newHistoryView(entries))
}

// handleEdit is the single write endpoint. Form fields: boss, last_spawn,
// editor, password, killer (optional).
func (h *handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form")
		return
	}

	boss := strings.TrimSpace(r.PostFormValue("boss"))
	lastSpawn := r.PostFormValue("last_spawn")
	editor := r.PostFormValue("editor")

	entry, err := h.sched.RecordEdit(r.Context(), boss, lastSpawn, editor, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidTimestamp),
			errors.Is(err, core.ErrInvalidBossName),
			errors.Is(err, core.ErrBossNameTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, core.ErrUnknownBoss):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if h.cfg.metrics != nil {
		h.cfg.metrics.EditObserved()
	}

	if killer := strings.TrimSpace(r.PostFormValue("killer")); killer != "" {
		if tmpl, ok := h.cfg.announcements[boss]; ok {
			h.sched.Announce(r.Context(), strings.ReplaceAll(tmpl, "{killer}", killer))
		}
	}

	writeJSON(w, http.StatusOK, newHistoryView([]core.EditHistoryEntry{entry})[0])
}

// authorized checks the opaque admin credential. Editing is disabled when no
// credential is configured.
func (h *handler) authorized(r *http.Request) bool {
	if h.cfg.credential == "" {
		return false
	}
	supplied := r.Header.Get("X-Bosswatch-Credential")
	if supplied == "" {
		supplied = r.URL.Query().Get("credential")
	}
	if supplied == "" {
		supplied = r.PostFormValue("password")
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(h.cfg.credential)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
