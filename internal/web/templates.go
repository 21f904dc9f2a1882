package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render writes a page template with the given status code. Template
// execution errors are logged; by then headers are already written, so the
// client gets a truncated page rather than a second status.
func Render(w http.ResponseWriter, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, page, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render template")
	}
}
