// Package web renders the HTML dashboard.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

// pages lists page templates; each is parsed together with layout.html.
var pages = []string{"dashboard.html"}

// SnapshotLoader loads the current analysis snapshot.
type SnapshotLoader interface {
	Load(ctx context.Context) (*core.Snapshot, error)
}

// RenderRecorder counts rendered pages.
type RenderRecorder interface {
	RecordRender(surface, state string)
}

// Options configures a Handler.
type Options struct {
	// TemplatesDir overrides the embedded templates when set.
	TemplatesDir   string
	Location       *time.Location
	SignalDefault  bool
	RenderRecorder RenderRecorder
	Logger         *zap.Logger
}

// Handler provides web UI handlers with template rendering
type Handler struct {
	// pageTemplates holds separate template instances for each page
	// Each instance contains layout.html + the specific page template
	pageTemplates map[string]*template.Template

	loader        SnapshotLoader
	location      *time.Location
	signalDefault bool
	recorder      RenderRecorder
	logger        *zap.Logger
}

// NewHandler creates a new web handler. Templates are loaded from
// opts.TemplatesDir, or from the embedded set when it is empty.
func NewHandler(loader SnapshotLoader, opts Options) (*Handler, error) {
	if opts.TemplatesDir != "" {
		pageTemplates := make(map[string]*template.Template, len(pages))
		for _, page := range pages {
			tmpl, err := template.ParseFiles(
				filepath.Join(opts.TemplatesDir, "layout.html"),
				filepath.Join(opts.TemplatesDir, page),
			)
			if err != nil {
				return nil, fmt.Errorf("parsing template %s: %w", page, err)
			}
			pageTemplates[page] = tmpl
		}
		return newHandler(pageTemplates, loader, opts), nil
	}
	return NewHandlerWithFS(TemplateFS(), loader, opts)
}

// NewHandlerWithFS creates a new web handler using a custom filesystem.
func NewHandlerWithFS(fsys fs.FS, loader SnapshotLoader, opts Options) (*Handler, error) {
	pageTemplates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(fsys, "layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s from fs: %w", page, err)
		}
		pageTemplates[page] = tmpl
	}
	return newHandler(pageTemplates, loader, opts), nil
}

func newHandler(pageTemplates map[string]*template.Template, loader SnapshotLoader, opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		pageTemplates: pageTemplates,
		loader:        loader,
		location:      loc,
		signalDefault: opts.SignalDefault,
		recorder:      opts.RenderRecorder,
		logger:        logger.OrNop(opts.Logger),
	}
}

// render executes the specified page template with the given data. Output
// is buffered so a template failure still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pageTemplates[page]
	if !ok {
		http.Error(w, "template not found: "+page, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Error("rendering template", zap.String("page", page), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// TemplateFS returns the embedded template filesystem for external use.
func TemplateFS() fs.FS {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// This should never happen with valid embed directive
		return templateFS
	}
	return subFS
}
