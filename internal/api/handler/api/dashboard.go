// internal/api/handler/api/dashboard.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/api/response"
	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/dashboard"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"go.uber.org/zap"
)

// SnapshotLoader loads the current analysis snapshot.
type SnapshotLoader interface {
	Load(ctx context.Context) (*core.Snapshot, error)
}

// RenderRecorder counts rendered pages.
type RenderRecorder interface {
	RecordRender(surface, state string)
}

// DashboardHandler serves the dashboard page model and the raw snapshot.
type DashboardHandler struct {
	loader        SnapshotLoader
	location      *time.Location
	signalDefault bool
	recorder      RenderRecorder
	logger        *zap.Logger
}

// DashboardOptions configures a DashboardHandler.
type DashboardOptions struct {
	Location       *time.Location
	SignalDefault  bool
	RenderRecorder RenderRecorder
	Logger         *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(loader SnapshotLoader, opts DashboardOptions) *DashboardHandler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{
		loader:        loader,
		location:      loc,
		signalDefault: opts.SignalDefault,
		recorder:      opts.RenderRecorder,
		logger:        logger.OrNop(opts.Logger),
	}
}

// Dashboard returns the filtered page model. It takes the same query
// parameters as the HTML dashboard. Load failures are reported inside the
// page state, not as an HTTP error.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	f, err := dashboard.ParseFilter(r.URL.Query(), h.signalDefault)
	if err != nil {
		response.Fail(w, err)
		return
	}

	snap, loadErr := h.loader.Load(r.Context())
	page := dashboard.Build(snap, loadErr, f, h.location)

	if page.State == dashboard.StateError {
		h.logger.Warn("dashboard rendered without data", zap.Error(loadErr))
	}
	if h.recorder != nil {
		h.recorder.RecordRender(metrics.SurfaceAPI, string(page.State))
	}

	response.JSON(w, http.StatusOK, page)
}

// Snapshot returns the snapshot as loaded, with chart links filled in.
func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snap)
}
