package web

import (
	"net/http"

	"github.com/newthinker/ichimoku-dashboard/internal/dashboard"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"go.uber.org/zap"
)

// Cards per grid row
const gridColumns = 2

// Disclaimer is shown in the page footer.
const Disclaimer = "This dashboard provides technical analysis for reference only and is not investment advice. " +
	"AI commentary is generated by third-party models. Trading carries risk; assess your own risk tolerance."

// SelectOption is one entry of a filter dropdown
type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// DashboardData holds data for the dashboard template
type DashboardData struct {
	Title                 string
	Page                  dashboard.Page
	Grid                  [][]dashboard.Card
	Notice                string
	SourceOptions         []SelectOption
	RecommendationOptions []SelectOption
	Disclaimer            string
}

var sourceChoices = []SelectOption{
	{Value: string(dashboard.SourceAll), Label: "All"},
	{Value: string(dashboard.SourceCrypto), Label: "Crypto"},
	{Value: string(dashboard.SourceForex), Label: "Forex"},
}

var recommendationChoices = []SelectOption{
	{Value: string(dashboard.RecAll), Label: "All"},
	{Value: string(dashboard.RecStrong), Label: "Strong signals"},
	{Value: string(dashboard.RecLong), Label: "Long bias"},
	{Value: string(dashboard.RecShort), Label: "Short bias"},
	{Value: string(dashboard.RecWait), Label: "Wait"},
}

func options(choices []SelectOption, selected string) []SelectOption {
	out := make([]SelectOption, len(choices))
	for i, c := range choices {
		c.Selected = c.Value == selected
		out[i] = c
	}
	return out
}

// Dashboard renders the dashboard page. An invalid filter is reported as a
// notice and the default filter is used instead.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var notice string

	f, err := dashboard.ParseFilter(r.URL.Query(), h.signalDefault)
	if err != nil {
		status = http.StatusBadRequest
		notice = err.Error()
		f, _ = dashboard.ParseFilter(nil, h.signalDefault)
	}

	snap, loadErr := h.loader.Load(r.Context())
	page := dashboard.Build(snap, loadErr, f, h.location)

	if page.State == dashboard.StateError {
		h.logger.Warn("dashboard rendered without data", zap.Error(loadErr))
	}
	if h.recorder != nil {
		h.recorder.RecordRender(metrics.SurfaceWeb, string(page.State))
	}

	h.render(w, status, "dashboard.html", DashboardData{
		Title:                 "Ichimoku Signal Dashboard",
		Page:                  page,
		Grid:                  dashboard.Grid(page.Cards, gridColumns),
		Notice:                notice,
		SourceOptions:         options(sourceChoices, string(f.Source)),
		RecommendationOptions: options(recommendationChoices, string(f.Recommendation)),
		Disclaimer:            Disclaimer,
	})
}
