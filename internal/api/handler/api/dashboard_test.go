// internal/api/handler/api/dashboard_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/ichimoku-dashboard/internal/api/response"
	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	snap  *core.Snapshot
	err   error
	calls int
}

func (s *stubLoader) Load(context.Context) (*core.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

type renders map[string]int

func (r renders) RecordRender(surface, state string) {
	r[surface+"/"+state]++
}

func sampleSnapshot() *core.Snapshot {
	return &core.Snapshot{
		GeneratedAt: "2025-03-01T08:00:00",
		Results: []core.InstrumentResult{
			{
				Symbol:                 "BTC-USDT",
				Source:                 core.SourceCrypto,
				CombinedRecommendation: core.RecStrongLong,
				HasSignal:              true,
				Daily:                  &core.TimeframeReading{Price: 50000.1234, Trend: core.TrendStrongUp},
				ChartURL:               "https://www.tradingview.com/chart/?symbol=OKX:BTCUSDT",
			},
			{
				Symbol:                 "EUR/USD",
				Source:                 core.SourceForex,
				CombinedRecommendation: core.RecWait,
				ChartURL:               "https://www.tradingview.com/chart/?symbol=FX:EURUSD",
			},
		},
	}
}

// decodePage re-decodes the envelope data into a dashboard.Page.
func decodePage(t *testing.T, body []byte) dashboard.Page {
	t.Helper()
	var envelope struct {
		Data dashboard.Page `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

func TestDashboardHandler_Dashboard(t *testing.T) {
	rec := renders{}
	handler := NewDashboardHandler(&stubLoader{snap: sampleSnapshot()}, DashboardOptions{
		SignalDefault:  true,
		RenderRecorder: rec,
	})

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w.Body.Bytes())

	assert.Equal(t, dashboard.StateOK, page.State)
	assert.True(t, page.Filter.OnlyWithSignal)
	require.NotNil(t, page.Summary)
	assert.Equal(t, 2, page.Summary.Total)
	assert.Equal(t, 1, page.Count)
	require.Len(t, page.Rows, 1)
	assert.Equal(t, "BTC-USDT", page.Rows[0].Symbol)
	assert.Equal(t, "50000.1234", page.Rows[0].Price)
	assert.Equal(t, 1, rec["api/ok"])
}

func TestDashboardHandler_DashboardWithFilters(t *testing.T) {
	handler := NewDashboardHandler(&stubLoader{snap: sampleSnapshot()}, DashboardOptions{SignalDefault: true})

	req := httptest.NewRequest("GET", "/api/v1/dashboard?applied=1&source=forex&rec=wait", nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	page := decodePage(t, w.Body.Bytes())
	assert.Equal(t, dashboard.StateOK, page.State)
	require.Len(t, page.Cards, 1)
	assert.Equal(t, "EUR/USD", page.Cards[0].Symbol)
	assert.Equal(t, dashboard.ToneNeutral, page.Cards[0].Tone)
}

func TestDashboardHandler_DashboardBadFilter(t *testing.T) {
	loader := &stubLoader{snap: sampleSnapshot()}
	handler := NewDashboardHandler(loader, DashboardOptions{})

	req := httptest.NewRequest("GET", "/api/v1/dashboard?rec=sideways", nil)
	w := httptest.NewRecorder()

	handler.Dashboard(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, loader.calls, "snapshot must not be read for a bad request")

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestDashboardHandler_DashboardStates(t *testing.T) {
	tests := []struct {
		name  string
		snap  *core.Snapshot
		err   error
		state dashboard.State
	}{
		{"no data", nil, core.WrapError(core.ErrNoData, errors.New("missing")), dashboard.StateNoData},
		{"invalid", nil, core.WrapError(core.ErrSnapshotInvalid, errors.New("bad json")), dashboard.StateError},
		{"empty", &core.Snapshot{GeneratedAt: "2025-03-01T08:00:00"}, nil, dashboard.StateEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := renders{}
			handler := NewDashboardHandler(&stubLoader{snap: tt.snap, err: tt.err}, DashboardOptions{RenderRecorder: rec})

			w := httptest.NewRecorder()
			handler.Dashboard(w, httptest.NewRequest("GET", "/api/v1/dashboard", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			page := decodePage(t, w.Body.Bytes())
			assert.Equal(t, tt.state, page.State)
			assert.NotEmpty(t, page.Message)
			assert.Equal(t, 1, rec["api/"+string(tt.state)])
		})
	}
}

func TestDashboardHandler_Snapshot(t *testing.T) {
	handler := NewDashboardHandler(&stubLoader{snap: sampleSnapshot()}, DashboardOptions{})

	w := httptest.NewRecorder()
	handler.Snapshot(w, httptest.NewRequest("GET", "/api/v1/snapshot", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data core.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "2025-03-01T08:00:00", envelope.Data.GeneratedAt)
	require.Len(t, envelope.Data.Results, 2)
	assert.Equal(t, "https://www.tradingview.com/chart/?symbol=FX:EURUSD", envelope.Data.Results[1].ChartURL)
}

func TestDashboardHandler_SnapshotErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{core.WrapError(core.ErrNoData, nil), http.StatusNotFound, "NO_DATA"},
		{core.WrapError(core.ErrSnapshotInvalid, errors.New("eof")), http.StatusBadGateway, "SNAPSHOT_INVALID"},
		{core.WrapError(core.ErrStorageFailed, errors.New("denied")), http.StatusBadGateway, "STORAGE_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			handler := NewDashboardHandler(&stubLoader{err: tt.err}, DashboardOptions{})

			w := httptest.NewRecorder()
			handler.Snapshot(w, httptest.NewRequest("GET", "/api/v1/snapshot", nil))

			assert.Equal(t, tt.status, w.Code)
			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
