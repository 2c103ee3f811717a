// HTTP handlers of the alert subsystem.
//
// Talent-facing routes expect an x-user-id header forwarded by the Gateway;
// /internal routes are reachable only from the backend network.
//
// Routes:
//
//	GET  /alerts                          → list the talent's alerts
//	POST /alerts                          → create an alert
//	POST /alerts/preview                  → count offers an unsaved alert would match
//	PUT  /alerts/{id}                     → update an alert
//	POST /alerts/{id}/deactivate          → switch an alert off
//	POST /internal/offers/{id}/published  → publish hook, instant dispatch
//	POST /internal/dispatch/{frequency}   → manual daily|weekly dispatch
package alert

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"talentmatch/matching-service/internal/model"
	"talentmatch/matching-service/internal/store"
)

// Handler exposes the alert routes.
type Handler struct {
	svc        *Service
	dispatcher *Dispatcher
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, dispatcher *Dispatcher) *Handler {
	return &Handler{svc: svc, dispatcher: dispatcher}
}

// RegisterRoutes mounts the alert routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/alerts", h.handleAlerts)
	mux.HandleFunc("/alerts/preview", h.handlePreview)
	mux.HandleFunc("/alerts/", h.handleAlertAction)
	mux.HandleFunc("/internal/offers/", h.handleOfferPublished)
	mux.HandleFunc("/internal/dispatch/", h.handleDispatch)
}

// ─── Talent-facing routes ─────────────────────────────────────────────────────

// AlertView is the JSON shape returned for an alert.
type AlertView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Skills         []string   `json:"skills"`
	TJMMin         *int       `json:"tjmMin"`
	Mobilite       *string    `json:"mobilite"`
	Lieux          []string   `json:"lieux"`
	Frequence      string     `json:"frequence"`
	Active         bool       `json:"active"`
	LastNotifiedAt *time.Time `json:"lastNotifiedAt"`
	SentCount      int        `json:"sentCount"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	talentID := r.Header.Get("x-user-id")
	if talentID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		alerts, err := h.svc.List(r.Context(), talentID)
		if err != nil {
			h.writeError(w, "list", err)
			return
		}
		views := make([]AlertView, 0, len(alerts))
		for _, a := range alerts {
			views = append(views, toView(a))
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			jsonError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		a, err := h.svc.Create(r.Context(), talentID, in)
		if err != nil {
			h.writeError(w, "create", err)
			return
		}
		writeJSON(w, http.StatusCreated, toView(*a))

	default:
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	count, err := h.svc.Preview(r.Context(), in)
	if err != nil {
		h.writeError(w, "preview", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// handleAlertAction handles PUT /alerts/{id} and POST /alerts/{id}/deactivate
func (h *Handler) handleAlertAction(w http.ResponseWriter, r *http.Request) {
	talentID := r.Header.Get("x-user-id")
	if talentID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 2 && r.Method == http.MethodPut:
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			jsonError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		a, err := h.svc.Update(r.Context(), talentID, parts[1], in)
		if err != nil {
			h.writeError(w, "update", err)
			return
		}
		writeJSON(w, http.StatusOK, toView(*a))

	case len(parts) == 3 && parts[2] == "deactivate" && r.Method == http.MethodPost:
		if err := h.svc.Deactivate(r.Context(), talentID, parts[1]); err != nil {
			h.writeError(w, "deactivate", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})

	default:
		jsonError(w, "invalid path", http.StatusNotFound)
	}
}

// ─── Internal routes ──────────────────────────────────────────────────────────

// handleOfferPublished handles POST /internal/offers/{id}/published
func (h *Handler) handleOfferPublished(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[3] != "published" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	if err := h.dispatcher.DispatchInstant(r.Context(), parts[2]); err != nil {
		h.writeError(w, "instant dispatch", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched"})
}

// handleDispatch handles POST /internal/dispatch/{daily|weekly}
func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}

	freq, err := model.ParseFrequency(strings.ToUpper(parts[2]))
	if err != nil || !freq.IsPeriodic() {
		jsonError(w, "frequency must be daily or weekly", http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.DispatchPeriodic(r.Context(), freq, time.Now()); err != nil {
		h.writeError(w, "periodic dispatch", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched"})
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func toView(a model.Alert) AlertView {
	var mobility *string
	if a.Mobility != nil {
		s := string(*a.Mobility)
		mobility = &s
	}
	return AlertView{
		ID:             a.ID,
		Name:           a.Name,
		Skills:         a.Skills,
		TJMMin:         a.RateMin,
		Mobilite:       mobility,
		Lieux:          a.Locations,
		Frequence:      string(a.Frequency),
		Active:         a.Active,
		LastNotifiedAt: a.LastNotifiedAt,
		SentCount:      a.SentCount,
		CreatedAt:      a.CreatedAt,
	}
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		jsonError(w, vErr.Msg, http.StatusBadRequest)
	case errors.Is(err, store.ErrAlertNotFound):
		jsonError(w, "alert not found", http.StatusNotFound)
	case errors.Is(err, store.ErrOfferNotFound):
		jsonError(w, "offer not found", http.StatusNotFound)
	default:
		log.Printf("[alert] %s error: %v", op, err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
