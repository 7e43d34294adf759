package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"qrsecure/http-server/admin"
	"qrsecure/http-server/generate"
	gethistory "qrsecure/http-server/history/get"
	gettemplate "qrsecure/http-server/template/get"
	"qrsecure/http-server/view"
	"qrsecure/internal/config"
	"qrsecure/internal/forms"
	"qrsecure/internal/history"
	"qrsecure/internal/middleware/auth"
	"qrsecure/internal/service"
	"qrsecure/internal/service/report"
)

func routes(cfg config.Config, log *slog.Logger, registry *forms.Registry, workspace *forms.Workspace,
	generator *service.Generator, repo history.Repository, reportSvc *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/api/templates", gettemplate.GetTemplates(log, registry))
	router.Get("/api/templates/fields", gettemplate.GetTemplateFields(log, registry))

	router.Post("/api/generate", generate.GenerateQR(log, generator))
	router.Post("/api/generate/confirm", generate.ConfirmSummary(log, generator))

	router.Get("/api/history", gethistory.GetHistory(log, repo))

	// Target page for generated QR codes.
	router.Get("/view", view.ViewPayload(log))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/templates", admin.GetTemplatesAdmin(log, workspace))
	adminRouter.Delete("/templates/{formType}", admin.DeleteTemplateAdmin(log, workspace))
	adminRouter.Post("/templates/reset", admin.ResetTemplatesAdmin(log, workspace))
	adminRouter.Get("/history/report", admin.HistoryReport(log, reportSvc))

	router.Mount("/api/admin", adminRouter)

	return router
}
