package handlers

import (
	"html/template"
	"net/http"
)

const stubTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>{{.Title}}</title>
</head>
<body>
	<h1 class="stub-title">{{.Title}}</h1>
	<p class="stub-path">{{.Path}}</p>
	<p class="stub-viewport"></p>
	<script>
		document.querySelector(".stub-viewport").textContent = window.innerWidth + "x" + window.innerHeight;
	</script>
</body>
</html>
`

// StubPage is the data rendered by the stub target page
type StubPage struct {
	Title string
	Path  string
}

// StubHandler serves a minimal page standing in for the application under test
type StubHandler struct {
	template *template.Template
	title    string
}

// NewStubHandler creates a new StubHandler
func NewStubHandler(title string) (*StubHandler, error) {
	tmpl, err := template.New("stub").Parse(stubTemplate)
	if err != nil {
		return nil, err
	}

	return &StubHandler{
		template: tmpl,
		title:    title,
	}, nil
}

// ServeHTTP renders the stub page for any GET request
func (h *StubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, StubPage{Title: h.title, Path: r.URL.Path}); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// HealthHandler reports that the stub server is up
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
