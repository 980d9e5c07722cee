package engine

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>th[data-reference] { cursor: pointer; }</style>
</head>
<body>
{{.Body}}
<script>
document.querySelectorAll("th[data-reference]").forEach(function (th) {
  th.addEventListener("click", function () {
    fetch("sort?column=" + encodeURIComponent(th.dataset.reference), {method: "POST"})
      .then(function () { location.reload(); });
  });
});
</script>
</body>
</html>
`))

// Page writes the current markup wrapped in a complete HTML document whose
// header cells post clicks back to the handler.
func (e *Engine) Page(w io.Writer, title string) error {
	var body strings.Builder
	if err := e.Render(&body); err != nil {
		return err
	}
	return pageTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body.String())})
}

// Handler serves the mounted tree over HTTP:
//
//	GET  /             the page
//	POST /sort?column= a header click on the column, then a redirect to /
//	GET  /debug/tree   the element tree as JSON
//	GET  /health       liveness
func (e *Engine) Handler(title string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		var page strings.Builder
		if err := e.Page(&page, title); err != nil {
			e.logger.Error("render page", "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page.String())
	})
	mux.HandleFunc("POST /sort", func(w http.ResponseWriter, r *http.Request) {
		column := r.URL.Query().Get("column")
		if column == "" {
			http.Error(w, "missing column", http.StatusBadRequest)
			return
		}
		clicked, err := e.ClickAttr("data-reference", column)
		if err != nil {
			e.logger.Error("sort click", "column", column, "request", w.Header().Get(requestIDHeader), "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !clicked {
			http.Error(w, fmt.Sprintf("unknown column %q", column), http.StatusNotFound)
			return
		}
		e.logger.Info("sorted", "column", column, "request", w.Header().Get(requestIDHeader))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /debug/tree", func(w http.ResponseWriter, r *http.Request) {
		tree := e.WidgetTree()
		if tree == nil {
			http.Error(w, "no widget tree", http.StatusServiceUnavailable)
			return
		}
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	return e.withRequestID(mux)
}

const requestIDHeader = "X-Request-Id"

// withRequestID tags every response with a fresh request ID and logs the
// request under it.
func (e *Engine) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		e.logger.Debug("request", "request", id, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
