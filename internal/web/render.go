package web

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vbonduro/stock2profit/internal/auth"
	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/money"
	"github.com/vbonduro/stock2profit/internal/navigator"
)

// pageData is what every full page template receives.
type pageData struct {
	View    navigator.View
	Menu    []navigator.View
	User    *auth.Claims
	Scroll  int
	Content any
}

func newPageData(v navigator.View, user *auth.Claims, content any) pageData {
	return pageData{View: v, Menu: navigator.Menu(), User: user, Content: content}
}

func templateFuncs(currency string) template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string { return money.Format(currency, v) },
		"whole": func(v float64) string { return money.Whole(currency, v) },
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"ago":   humanize.Time,
		"date": func(s string) string {
			t, err := time.Parse(time.DateOnly, s)
			if err != nil {
				return s
			}
			return t.Format("Jan 2, 2006")
		},
		"initials":    initials,
		"statusClass": statusClass,
		"alertClass":  alertClass,
		"lowStock":    func(it *domain.InventoryItem, threshold int) bool { return it.LowStock(threshold) },
		"inc":         func(i int) int { return i + 1 },
	}
}

// renderPage parses and executes a full-page template set with status code.
func (s *Server) renderPage(w http.ResponseWriter, status int, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses file and executes the template it defines as name.
func (s *Server) renderPartial(w http.ResponseWriter, status int, file, name string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, name, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		out = append(out, []rune(f)[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

func statusClass(s domain.ActivityStatus) string {
	switch s {
	case domain.ActivityCompleted:
		return "badge-success"
	case domain.ActivityPending:
		return "badge-warning"
	default:
		return "badge-danger"
	}
}

func alertClass(k domain.AlertKind) string {
	switch k {
	case domain.AlertError:
		return "alert-error"
	case domain.AlertWarning:
		return "alert-warning"
	default:
		return "alert-info"
	}
}
