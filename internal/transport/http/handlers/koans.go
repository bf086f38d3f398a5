package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-zen-koans/internal/service"
	"github.com/pribylovaa/go-zen-koans/internal/transport/http/apierrors"
)

// ListKoans — GET /koans: все коаны с ветками комментариев.
func (h *Handlers) ListKoans(w http.ResponseWriter, r *http.Request) {
	koans, err := h.Koans.ListKoansWithThreads(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, koans)
}

// GetKoan — GET /koans/{id}: один коан с ветками комментариев.
func (h *Handlers) GetKoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	koan, err := h.Koans.KoanWithThreads(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, koan)
}
