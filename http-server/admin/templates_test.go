package admin

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrsecure/internal/forms"
)

func adminRouter(workspace *forms.Workspace) *chi.Mux {
	log := slog.Default()
	r := chi.NewRouter()
	r.Get("/templates", GetTemplatesAdmin(log, workspace))
	r.Delete("/templates/{formType}", DeleteTemplateAdmin(log, workspace))
	r.Post("/templates/reset", ResetTemplatesAdmin(log, workspace))
	return r
}

func TestDeleteTemplateAdmin(t *testing.T) {
	workspace := forms.NewWorkspace(forms.NewRegistry())
	router := adminRouter(workspace)

	req := httptest.NewRequest(http.MethodDelete, "/templates/contactForm", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "deleted")
	assert.Len(t, workspace.List(), 4)

	// Second delete of the same template: gone from the working copy.
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/templates/contactForm", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetTemplatesAdmin_ReflectsWorkingCopy(t *testing.T) {
	workspace := forms.NewWorkspace(forms.NewRegistry())
	workspace.Delete("studentBio")
	router := adminRouter(workspace)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseTemplates
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Len(t, resp.Templates, 4)
}

func TestResetTemplatesAdmin(t *testing.T) {
	workspace := forms.NewWorkspace(forms.NewRegistry())
	workspace.Delete("studentBio")
	workspace.Delete("contactForm")
	router := adminRouter(workspace)

	req := httptest.NewRequest(http.MethodPost, "/templates/reset", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, workspace.List(), 5)
}
