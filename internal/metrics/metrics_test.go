package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, reg *Registry, name string) bool {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return true
		}
	}
	return false
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg)

	// Go runtime collectors are always present
	assert.True(t, findFamily(t, reg, "go_goroutines"))
}

func TestRegistry_ImplementsGatherer(t *testing.T) {
	var _ prometheus.Gatherer = NewRegistry()
}

func TestRegistry_RecordRequest_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			reg := NewRegistry()
			reg.RecordRequest("GET", "/", tt.status, 0.01)

			got := testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", "/", tt.expected))
			assert.Equal(t, 1.0, got)
		})
	}
}

func TestRegistry_InFlight(t *testing.T) {
	reg := NewRegistry()

	reg.InFlightInc()
	reg.InFlightInc()
	reg.InFlightDec()

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.httpRequestsInFlight))
}

func TestRegistry_RecordSnapshotLoad(t *testing.T) {
	reg := NewRegistry()

	reg.RecordSnapshotLoad(LoadOK, 0.002, 12, 3)
	reg.RecordSnapshotLoad(LoadMissing, 0.001, 0, 0)
	reg.RecordSnapshotLoad(LoadOK, 0.002, 10, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.snapshotLoads.WithLabelValues(LoadOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.snapshotLoads.WithLabelValues(LoadMissing)))
	assert.Equal(t, 10.0, testutil.ToFloat64(reg.snapshotInstruments), "gauge tracks the last good load")
	assert.Equal(t, 4.0, testutil.ToFloat64(reg.chartLinksBackfilled))
	assert.Equal(t, 1, testutil.CollectAndCount(reg.snapshotLoadDuration))
}

func TestRegistry_FailedLoadKeepsInstrumentGauge(t *testing.T) {
	reg := NewRegistry()

	reg.RecordSnapshotLoad(LoadOK, 0.001, 7, 0)
	reg.RecordSnapshotLoad(LoadInvalid, 0.001, 0, 0)

	assert.Equal(t, 7.0, testutil.ToFloat64(reg.snapshotInstruments))
}

func TestRegistry_RecordRender(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRender("web", "ok")
	reg.RecordRender("web", "ok")
	reg.RecordRender("api", "no-data")

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.dashboardRenders.WithLabelValues("web", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.dashboardRenders.WithLabelValues("api", "no-data")))
}
