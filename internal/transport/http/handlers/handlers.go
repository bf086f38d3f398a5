// handlers — HTTP-обработчики REST API коанов.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-zen-koans/internal/models"
)

// KoansService — сервисный слой, который вызывают обработчики.
type KoansService interface {
	ListKoansWithThreads(ctx context.Context) ([]models.KoanWithComments, error)
	KoanWithThreads(ctx context.Context, id string) (*models.KoanWithComments, error)
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	Koans KoansService
}

func New(koans KoansService) *Handlers {
	return &Handlers{Koans: koans}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
