// Package generate exposes the submission pipeline: POST /api/generate runs
// validation through QR rendering, POST /api/generate/confirm settles a
// parked summary decision.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"qrsecure/internal/errs"
	"qrsecure/internal/forms"
	"qrsecure/internal/history"
	"qrsecure/internal/service"
)

type Pipeline interface {
	Generate(ctx context.Context, formType string, raw map[string]any) (*service.Result, error)
	Confirm(ctx context.Context, token string, accept bool) (*service.Result, error)
}

type ResponseResult struct {
	Status    string         `json:"status"`
	QRCodeURL string         `json:"qrCodeUrl,omitempty"`
	SourceURL string         `json:"sourceUrl,omitempty"`
	Entry     *history.Entry `json:"entry,omitempty"`
	Token     string         `json:"token,omitempty"`
	Summary   string         `json:"summary,omitempty"`
	Error     string         `json:"error,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

type ResponseInvalid struct {
	Status string             `json:"status"`
	Errors []forms.FieldError `json:"errors"`
	// Message is the aggregated notification text, one per submission.
	Message string `json:"message"`
}

func GenerateQR(log *slog.Logger, pipeline Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate.GenerateQR"

		var req struct {
			FormType string         `json:"formType"`
			Values   map[string]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		result, err := pipeline.Generate(r.Context(), req.FormType, req.Values)
		if err != nil {
			writePipelineError(w, r, log, op, err)
			return
		}
		writeResult(w, r, log, op, result)
	}
}

func ConfirmSummary(log *slog.Logger, pipeline Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate.ConfirmSummary"

		var req struct {
			Token  string `json:"token"`
			Accept bool   `json:"accept"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if req.Token == "" {
			http.Error(w, "Missing required field 'token'", http.StatusBadRequest)
			return
		}

		result, err := pipeline.Confirm(r.Context(), req.Token, req.Accept)
		if err != nil {
			writePipelineError(w, r, log, op, err)
			return
		}
		writeResult(w, r, log, op, result)
	}
}

func writePipelineError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	var vErr *forms.ValidationError
	switch {
	case errors.As(err, &vErr):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ResponseInvalid{Status: "invalid", Errors: vErr.Fields, Message: vErr.Combined()})

	case errors.Is(err, errs.ErrUnknownTemplate):
		log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Unknown form type")
		http.Error(w, "Unknown form type", http.StatusNotFound)

	case errors.Is(err, errs.ErrUnknownToken):
		log.With(slog.String("op", op)).Warn("Unknown or expired confirmation token")
		http.Error(w, "Unknown or expired confirmation token", http.StatusNotFound)

	case errors.Is(err, errs.ErrEncodeFailed):
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to generate QR code")
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)

	default:
		log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Pipeline failure")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeResult(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, result *service.Result) {
	resp := ResponseResult{Status: string(result.Status)}

	switch result.Status {
	case service.StatusDone:
		resp.QRCodeURL = result.Artifact.DataURL
		resp.SourceURL = result.Artifact.SourceURL
		resp.Entry = result.Entry
		resp.Warning = result.Warning
		if result.Warning != "" {
			log.With(slog.String("op", op), slog.String("warning", result.Warning)).Error("History persistence failed")
		}

	case service.StatusNeedsSummary:
		resp.Token = result.Token
		resp.Summary = result.Summary

	case service.StatusSummaryFailed:
		resp.Error = result.Reason
		render.Status(r, http.StatusBadGateway)
	}

	render.JSON(w, r, resp)
}
