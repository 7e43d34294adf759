package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"qrsecure/internal/forms"
)

type TemplateCatalog interface {
	Templates() []forms.Template
	Schema(id string) ([]forms.FieldSpec, bool)
	Defaults(id string) (map[string]any, bool)
}

type ResponseTemplates struct {
	Templates []forms.Template `json:"templates"`
}

// GetTemplates lists the registry: id, label and icon per template.
func GetTemplates(log *slog.Logger, catalog TemplateCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ResponseTemplates{Templates: catalog.Templates()})
	}
}

type ResponseFields struct {
	FormType string            `json:"formType"`
	Fields   []forms.FieldSpec `json:"fields"`
	Defaults map[string]any    `json:"defaults"`
}

// GetTemplateFields returns the field schema and default values for one
// template, selected by the "type" query parameter.
func GetTemplateFields(log *slog.Logger, catalog TemplateCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.template.GetTemplateFields"

		formType := r.URL.Query().Get("type")
		if formType == "" {
			log.With(slog.String("op", op)).Error("Missing 'type' in query parameters")
			http.Error(w, "Missing required query parameter 'type'", http.StatusBadRequest)
			return
		}

		fields, ok := catalog.Schema(formType)
		if !ok {
			log.With(slog.String("op", op), slog.String("type", formType)).Warn("Form not found")
			http.Error(w, "Form not found", http.StatusNotFound)
			return
		}
		defaults, _ := catalog.Defaults(formType)

		render.JSON(w, r, ResponseFields{
			FormType: formType,
			Fields:   fields,
			Defaults: defaults,
		})
	}
}
