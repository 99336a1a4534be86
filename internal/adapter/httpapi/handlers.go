package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vimldn/vimnyc8/internal/aggregate"
	"github.com/vimldn/vimnyc8/internal/domain"
	"github.com/vimldn/vimnyc8/internal/review"
)

type handlers struct {
	svc     *aggregate.Service
	reviews *review.Store
	logger  *slog.Logger
}

func (h *handlers) handleBuilding(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("bbl")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "BBL parameter required")
		return
	}
	id, err := domain.PadParcel(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid BBL format")
		return
	}

	report, err := h.svc.BuildReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrParcelNotFound) {
			writeError(w, http.StatusNotFound, "Building not found")
			return
		}
		h.logger.Error("report build failed", "bbl", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch building data")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) handleLookup(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "Address parameter required")
		return
	}

	result, err := h.svc.Lookup(r.Context(), address)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParcel):
			writeError(w, http.StatusBadRequest, "Address parameter required")
		case errors.Is(err, domain.ErrParcelNotFound):
			writeError(w, http.StatusNotFound, `Address not found. Try including borough name (e.g., "123 Main St, Brooklyn")`)
		default:
			h.logger.Error("address lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Address search failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handlers) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	suggestions := h.svc.Autocomplete(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (h *handlers) handleListReviews(w http.ResponseWriter, r *http.Request) {
	if h.reviews == nil {
		writeError(w, http.StatusServiceUnavailable, "Review store unavailable")
		return
	}
	bbl := r.URL.Query().Get("bbl")
	if bbl == "" {
		writeError(w, http.StatusBadRequest, "BBL parameter required")
		return
	}
	id, err := domain.PadParcel(bbl)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid BBL format")
		return
	}

	summary, err := h.reviews.ForBuilding(r.Context(), string(id))
	if err != nil {
		h.logger.Error("review query failed", "bbl", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *handlers) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	if h.reviews == nil {
		writeError(w, http.StatusServiceUnavailable, "Review store unavailable")
		return
	}
	var sub review.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if id, err := domain.PadParcel(sub.BBL); err == nil {
		sub.BBL = string(id)
	}

	created, err := h.reviews.Add(r.Context(), sub)
	if err != nil {
		if errors.Is(err, review.ErrInvalidSubmission) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("review insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "review": created})
}

func (h *handlers) handleMarkHelpful(w http.ResponseWriter, r *http.Request) {
	if h.reviews == nil {
		writeError(w, http.StatusServiceUnavailable, "Review store unavailable")
		return
	}
	var body struct {
		ReviewID string `json:"reviewId"`
	}
	if err := decodeJSON(r, &body); err != nil || body.ReviewID == "" {
		writeError(w, http.StatusBadRequest, "reviewId is required")
		return
	}

	if err := h.reviews.MarkHelpful(r.Context(), body.ReviewID); err != nil {
		if errors.Is(err, review.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Review not found")
			return
		}
		h.logger.Error("helpful update failed", "review_id", body.ReviewID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
