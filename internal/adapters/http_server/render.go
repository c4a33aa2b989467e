package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

//go:embed templates/*.html static
var assets embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format(domain.DateLayout) },
	"longDate": func(t time.Time) string {
		return t.Format("Mon, Jan 2 2006")
	},
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

var pageNames = []string{
	"home", "search", "hotel_detail", "room_detail", "booking_confirmation", "error",
}

// pages holds one template set per page, each parsed together with the layout.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		out[name] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(assets, "templates/layout.html", "templates/"+name+".html"))
	}
	return out
}

// render executes a page into a buffer first so a template failure still
// yields a clean 500 instead of a half-written page.
func render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("render page failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Str("page", name).Msg("write page failed")
	}
}

type errorView struct {
	Title  string
	Status int
	Detail string
}

// renderError shows the error page. Internal failures are logged and the
// client only sees a generic message.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	v := errorView{Status: status}
	switch status {
	case http.StatusBadRequest:
		v.Title, v.Detail = "Invalid request", err.Error()
	case http.StatusNotFound:
		v.Title, v.Detail = "Not found", "We couldn't find what you were looking for."
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		v.Title, v.Detail = "Something went wrong", "Please try again in a moment."
	}
	render(w, status, "error", v)
}
