// HTTP handlers of the score engine.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET /offers/suggestions              → published offers ranked for the talent
//	GET /offers/{ref}/match              → MatchResult for one offer (ID or slug)
package matching

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"talentmatch/matching-service/internal/store"
)

// Handler exposes the matching routes.
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the matching routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/offers/suggestions", h.handleSuggestions)
	mux.HandleFunc("/offers/", h.handleOfferAction)
}

func (h *Handler) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	talentID := r.Header.Get("x-user-id")
	if talentID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = v
	}

	suggestions, err := h.svc.Suggestions(r.Context(), talentID, limit)
	if err != nil {
		h.writeError(w, "suggestions", err)
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// handleOfferAction handles GET /offers/{ref}/match
func (h *Handler) handleOfferAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "match" {
		jsonError(w, "invalid path", http.StatusNotFound)
		return
	}
	offerRef := parts[1]

	talentID := r.Header.Get("x-user-id")
	if talentID == "" {
		jsonError(w, "missing x-user-id header", http.StatusUnauthorized)
		return
	}

	result, err := h.svc.Match(r.Context(), talentID, offerRef)
	if err != nil {
		h.writeError(w, "match", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrOfferNotFound):
		jsonError(w, "offer not found", http.StatusNotFound)
	case errors.Is(err, store.ErrTalentNotFound):
		jsonError(w, "talent not found", http.StatusNotFound)
	default:
		log.Printf("[matching] %s error: %v", op, err)
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
