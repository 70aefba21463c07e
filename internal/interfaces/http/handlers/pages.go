package handlers

import (
	"net/http"
	"path/filepath"
)

// Page documents served from the static directory
const (
	PageHome      = "home.html"
	PageAI        = "ai.html"
	PageContact   = "contact.html"
	PageLogin     = "login.html"
	PageCompanies = "companies.html"
)

// Page serves one static document verbatim. A missing file is a 404.
func (h *Handlers) Page(name string) http.HandlerFunc {
	path := filepath.Join(h.staticDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
