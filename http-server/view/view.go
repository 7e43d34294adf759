// Package view serves the QR target page: GET /view?data= decodes the
// payload and presents the serialized text. The password line travels inside
// the payload itself; the page is a plain rendering of whatever was encoded.
package view

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"qrsecure/internal/encode"
)

const page = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>QRSecure</title></head>
<body>
<h1>Submitted Data</h1>
<pre>%s</pre>
</body>
</html>`

func ViewPayload(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.view.ViewPayload"

		data := r.URL.Query().Get("data")
		if data == "" {
			http.Error(w, "Missing required query parameter 'data'", http.StatusBadRequest)
			return
		}

		text, err := encode.Decode(data)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Warn("Bad payload")
			http.Error(w, "Malformed payload", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, page, html.EscapeString(text))
	}
}
