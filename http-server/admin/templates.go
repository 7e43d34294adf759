// Package admin holds the BasicAuth-gated management endpoints. Template
// deletion only touches the in-memory working copy; the canonical registry is
// immutable and a reset restores the full list.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"qrsecure/internal/forms"
)

type TemplateWorkspace interface {
	List() []forms.Template
	Delete(id string) bool
	Reset()
}

type ResponseTemplates struct {
	Templates []forms.Template `json:"templates"`
}

func GetTemplatesAdmin(log *slog.Logger, workspace TemplateWorkspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ResponseTemplates{Templates: workspace.List()})
	}
}

func DeleteTemplateAdmin(log *slog.Logger, workspace TemplateWorkspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.DeleteTemplateAdmin"

		formType := chi.URLParam(r, "formType")
		if !workspace.Delete(formType) {
			log.With(slog.String("op", op), slog.String("type", formType)).Warn("Form not found")
			http.Error(w, "Form not found", http.StatusNotFound)
			return
		}

		log.With(slog.String("op", op), slog.String("type", formType)).Info("Form template deleted from working copy")
		render.JSON(w, r, map[string]string{"status": "deleted"})
	}
}

func ResetTemplatesAdmin(log *slog.Logger, workspace TemplateWorkspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspace.Reset()
		render.JSON(w, r, map[string]string{"status": "reset"})
	}
}
