package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"titlewatch/internal/config"
	"titlewatch/internal/models"
	"titlewatch/internal/reporter"
	"titlewatch/internal/widget"
	"titlewatch/pkg/utils"
)

// StatusSource provides the live widget state
type StatusSource interface {
	Snapshot() widget.Snapshot
}

// Store is the repository surface the API reads from
type Store interface {
	reporter.Store
	GetLatest() (*models.Observation, error)
}

type Handler struct {
	config   *config.Config
	status   StatusSource
	store    Store
	reporter *reporter.Reporter
}

func NewHandler(cfg *config.Config, status StatusSource, store Store) *Handler {
	return &Handler{
		config:   cfg,
		status:   status,
		store:    store,
		reporter: reporter.New(cfg, store),
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/api/observations", h.handleObservations)
	mux.HandleFunc("/api/observations/latest", h.handleLatestObservation)
	mux.HandleFunc("/api/report", h.handleReport)

	mux.HandleFunc("/health", h.handleHealth)
}

type statusResponse struct {
	widget.Snapshot
	Age string `json:"age"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.status.Snapshot()
	respondJSON(w, statusResponse{
		Snapshot: snap,
		Age:      utils.FormatAge(snap.LastRefreshedAt),
	})
}

func (h *Handler) handleObservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	keyword := h.config.Widget.FilterKeyword

	since := time.Now().Add(-24 * time.Hour)
	if periodType := query.Get("period"); periodType != "" {
		period, err := h.reporter.GetPeriod(periodType)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		since = period.Start
	}

	observations, err := h.store.GetObservationsSince(keyword, since)
	if err != nil {
		http.Error(w, "Failed to fetch observations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	limit := 100
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		limit = l
	}
	if len(observations) > limit {
		observations = observations[len(observations)-limit:]
	}

	respondJSON(w, observations)
}

func (h *Handler) handleLatestObservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	obs, err := h.store.GetLatest()
	if err != nil {
		http.Error(w, "Failed to fetch latest observation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if obs == nil {
		http.Error(w, "No observations found", http.StatusNotFound)
		return
	}

	respondJSON(w, obs)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	if _, err := h.reporter.GetPeriod(periodType); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		http.Error(w, "Failed to generate report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, report)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
