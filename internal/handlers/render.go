package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"regexp"
	"time"

	"github.com/ignite/shop/internal/theme"
)

// Page templates
const (
	PageHome            = "home"
	PageProduct         = "product"
	PageProductFallback = "product_fallback"
	PageSuccess         = "success"
	PageCancel          = "cancel"
	PageError           = "error"
)

// noStoreCacheControl is sent with pages that must not be cached, such as
// the loading skeleton and error pages
const noStoreCacheControl = "private, no-cache, no-store, max-age=0, must-revalidate"

var productIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,255}$`)

// Renderer executes page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

// ErrorPage represents the data for the error template
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewRenderer parses layout.html together with each page template in fsys
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	funcMap := template.FuncMap{
		"globalCSS": func() template.CSS {
			return template.CSS(theme.GlobalCSS())
		},
	}

	layout, err := template.New("layout.html").Funcs(funcMap).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageHome, PageProduct, PageProductFallback, PageSuccess, PageCancel, PageError} {
		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}

		tmpl, err := clone.ParseFS(fsys, page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}

	return r, nil
}

// Render writes page with the given status. Nothing is written if the
// template fails to execute.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// page renders a page, falling back to a plain 500 when rendering fails
func (r *Renderer) page(w http.ResponseWriter, status int, page string, data any) {
	if err := r.Render(w, status, page, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// errorPage renders the error template. Error pages are never cached.
func (r *Renderer) errorPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", noStoreCacheControl)

	title := "Algo deu errado"
	if status == http.StatusNotFound {
		title = "Produto não encontrado"
	}

	r.page(w, status, PageError, ErrorPage{
		Status:  status,
		Title:   title,
		Message: message,
	})
}

// revalidatingCacheControl lets shared caches serve a page for ttl and then
// keep serving it while it is regenerated
func revalidatingCacheControl(ttl time.Duration) string {
	return fmt.Sprintf("s-maxage=%d, stale-while-revalidate", int(ttl.Seconds()))
}

func validProductID(id string) bool {
	return productIDPattern.MatchString(id)
}

// sendJSON sends v as a JSON response
func sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
