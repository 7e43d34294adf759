package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"qrsecure/internal/history"
)

type HistoryProvider interface {
	List(ctx context.Context) ([]history.Entry, error)
}

type ResponseHistory struct {
	History []history.Entry `json:"history"`
}

// GetHistory returns stored generation records, newest first.
func GetHistory(log *slog.Logger, provider HistoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.history.GetHistory"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := provider.List(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch history")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []history.Entry{}
		}

		render.JSON(w, r, ResponseHistory{History: entries})
	}
}
