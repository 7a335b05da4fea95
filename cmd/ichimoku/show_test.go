package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samplePage(t *testing.T, f dashboard.Filter) dashboard.Page {
	t.Helper()
	snap := &core.Snapshot{
		GeneratedAt: "2025-03-01T08:00:00",
		Results: []core.InstrumentResult{
			{
				Symbol:                 "BTC-USDT",
				Source:                 core.SourceCrypto,
				CombinedRecommendation: core.RecStrongLong,
				HasSignal:              true,
				Daily:                  &core.TimeframeReading{Price: 50000.1234, Trend: core.TrendStrongUp, Signals: []string{"TK cross"}},
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
	return dashboard.Build(snap, nil, f, nil)
}

func TestRenderPage_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPage(&buf, samplePage(t, dashboard.Filter{}), formatTable))

	out := buf.String()
	assert.Contains(t, out, "Last updated: 2025-03-01 08:00:00 (UTC)")
	assert.Contains(t, out, "Instruments: 2  With signal: 1  Strong long: 1")
	assert.Contains(t, out, "Results (2 instruments)")
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "🟢✨ strong-long")
	assert.Contains(t, out, "50000.1234")
	assert.Contains(t, out, "FX:EURUSD")
}

func TestRenderPage_TableStates(t *testing.T) {
	tests := []struct {
		name string
		page dashboard.Page
		want string
	}{
		{"no data", dashboard.Build(nil, nil, dashboard.Filter{}, nil), dashboard.MessageNoData},
		{"empty", dashboard.Build(&core.Snapshot{GeneratedAt: "2025-03-01"}, nil, dashboard.Filter{}, nil), dashboard.MessageEmpty},
		{"filtered empty", samplePage(t, dashboard.Filter{Source: dashboard.SourceForex, Recommendation: dashboard.RecShort}), dashboard.MessageFilteredEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, renderPage(&buf, tt.page, formatTable))
			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), "SYMBOL")
		})
	}
}

func TestRenderPage_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPage(&buf, samplePage(t, dashboard.Filter{OnlyWithSignal: true}), formatJSON))

	var got report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, dashboard.StateOK, got.State)
	assert.Equal(t, 1, got.Count)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 2, got.Summary.Total)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "BTC-USDT", got.Rows[0].Symbol)
}

func TestRenderPage_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPage(&buf, samplePage(t, dashboard.Filter{}), formatYAML))

	var got report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, dashboard.StateOK, got.State)
	assert.Equal(t, "2025-03-01 08:00:00", got.UpdatedAt)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "50000.1234", got.Rows[0].Price)
	assert.Contains(t, buf.String(), "daily_signals: TK cross")
}

func TestRenderPage_UnknownFormat(t *testing.T) {
	err := renderPage(&bytes.Buffer{}, samplePage(t, dashboard.Filter{}), "xml")
	assert.Error(t, err)
}
