package dashboard

import (
	"errors"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

// State is the overall condition of a rendered dashboard
type State string

const (
	StateOK            State = "ok"
	StateNoData        State = "no-data"
	StateError         State = "error"
	StateEmpty         State = "empty"
	StateFilteredEmpty State = "filtered-empty"
)

// User-facing messages per state
const (
	MessageNoData        = "No analysis data yet. Wait for the next scheduled run or run the analyzer manually."
	MessageLoadError     = "Failed to load analysis data: "
	MessageEmpty         = "No analysis results."
	MessageFilteredEmpty = "No results match the current filters."
)

// Page is everything a rendering surface needs for one refresh
type Page struct {
	State       State    `json:"state"`
	Message     string   `json:"message,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	UpdatedZone string   `json:"updated_zone,omitempty"`
	Filter      Filter   `json:"filter"`
	Summary     *Summary `json:"summary,omitempty"`
	Count       int      `json:"count"`
	Rows        []Row    `json:"rows"`
	Cards       []Card   `json:"cards"`
}

// HasData reports whether a snapshot with at least one result was loaded.
func (p Page) HasData() bool {
	return p.Summary != nil
}

// Build runs one refresh cycle over an already loaded snapshot. loadErr is
// the error returned by the snapshot reader, if any. The summary is always
// computed over every result, independent of f.
func Build(snap *core.Snapshot, loadErr error, f Filter, loc *time.Location) Page {
	page := Page{
		Filter: f,
		Rows:   []Row{},
		Cards:  []Card{},
	}

	if loadErr != nil || snap == nil {
		if loadErr == nil || errors.Is(loadErr, core.ErrNoData) {
			page.State = StateNoData
			page.Message = MessageNoData
			return page
		}
		page.State = StateError
		page.Message = MessageLoadError + loadErr.Error()
		return page
	}

	page.UpdatedAt = FormatGeneratedAt(snap.GeneratedAt, loc)
	if t, ok := ParseGeneratedAt(snap.GeneratedAt, loc); ok {
		// offset in effect at generation time, not now
		_, offset := t.Zone()
		page.UpdatedZone = FormatUTCOffset(offset)
	} else {
		page.UpdatedZone = ZoneLabel(loc, time.Now())
	}

	if len(snap.Results) == 0 {
		page.State = StateEmpty
		page.Message = MessageEmpty
		return page
	}

	summary := Summarize(snap.Results)
	page.Summary = &summary

	filtered := Apply(snap.Results, f)
	page.Count = len(filtered)
	if len(filtered) == 0 {
		page.State = StateFilteredEmpty
		page.Message = MessageFilteredEmpty
		return page
	}

	page.State = StateOK
	page.Rows = Rows(filtered)
	page.Cards = Cards(filtered)
	return page
}
