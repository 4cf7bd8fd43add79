package api

import (
	"html/template"
	"log/slog"
	"net/http"
)

type endpointDoc struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type apiDocs struct {
	Title     string        `json:"title"`
	Version   string        `json:"version"`
	BaseURL   string        `json:"baseUrl"`
	Endpoints []endpointDoc `json:"endpoints"`
}

var endpoints = []endpointDoc{
	{"GET", "/api/health", "Service and database health"},
	{"POST", "/api/simulate", "Score a launch proposal without storing it"},
	{"GET", "/api/projects", "List projects with their latest score (page, limit, status)"},
	{"POST", "/api/projects", "Submit a project and score it"},
	{"GET", "/api/projects/{id}", "Project details, metadata, latest score and launch config"},
	{"PATCH", "/api/projects/{id}/status", "Change a project's lifecycle status"},
	{"DELETE", "/api/projects/{id}", "Delete a project and its history"},
	{"POST", "/api/scores/{projectId}", "Rescore a stored project"},
	{"GET", "/api/scores/{projectId}/history", "Score history, newest first"},
	{"GET", "/api/analytics", "Grade distribution and status counts"},
	{"GET", "/api/analytics/flags", "Risk flag statistics"},
	{"GET", "/api/contract/score/{projectId}", "Read the on-chain score"},
	{"POST", "/api/contract/set-score", "Write a score on chain (admin token)"},
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; width: 100%; }
td, th { border-bottom: 1px solid #ddd; padding: .5rem; text-align: left; }
code { background: #f4f4f4; padding: 0 .25rem; }
</style>
</head>
<body>
<h1>{{.Title}} <small>v{{.Version}}</small></h1>
<p>Base URL: <code>{{.BaseURL}}</code></p>
<table>
<tr><th>Method</th><th>Path</th><th>Description</th></tr>
{{range .Endpoints}}<tr><td>{{.Method}}</td><td><code>{{.Path}}</code></td><td>{{.Description}}</td></tr>
{{end}}</table>
</body>
</html>
`))

type DocsHandler struct {
	logger *slog.Logger
}

func NewDocsHandler(logger *slog.Logger) *DocsHandler {
	return &DocsHandler{logger: logger}
}

func (h *DocsHandler) describe(r *http.Request) apiDocs {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return apiDocs{
		Title:     "Guardian API",
		Version:   Version,
		BaseURL:   scheme + "://" + r.Host + "/api",
		Endpoints: endpoints,
	}
}

func (h *DocsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.describe(r))
}

func (h *DocsHandler) HTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := docsPage.Execute(w, h.describe(r)); err != nil {
		h.logger.Error("render docs", "error", err)
	}
}
