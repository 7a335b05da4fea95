// Package snapshot loads the analysis results artifact written by the
// external analyzer.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/chart"
	"github.com/newthinker/ichimoku-dashboard/internal/core"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"github.com/newthinker/ichimoku-dashboard/internal/storage/source"
	"go.uber.org/zap"
)

// Recorder receives one observation per Load call.
type Recorder interface {
	RecordSnapshotLoad(result string, duration float64, instruments, backfilled int)
}

// Reader loads and post-processes the snapshot from a source.
// It holds no state between loads; every call re-reads the source.
type Reader struct {
	src      source.Source
	key      string
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Reader.
type Option func(*Reader)

// WithRecorder reports load outcomes to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Reader) {
		r.recorder = rec
	}
}

// NewReader creates a Reader for the object at key.
func NewReader(src source.Source, key string, log *zap.Logger, opts ...Option) *Reader {
	r := &Reader{
		src:    src,
		key:    key,
		logger: logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the object key the reader loads.
func (r *Reader) Key() string {
	return r.key
}

// Present reports whether the snapshot object exists in the source.
func (r *Reader) Present(ctx context.Context) (bool, error) {
	return r.src.Exists(ctx, r.key)
}

// Load reads and decodes the snapshot and backfills missing chart links.
//
// A missing object yields an error matching core.ErrNoData. A read failure
// matches core.ErrStorageFailed and an undecodable document matches
// core.ErrSnapshotInvalid. In every error case the snapshot is nil and the
// caller is expected to render a no-data state.
func (r *Reader) Load(ctx context.Context) (*core.Snapshot, error) {
	start := time.Now()

	data, err := r.src.Read(ctx, r.key)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			r.logger.Debug("snapshot not found", zap.String("source", r.src.Name()), zap.String("key", r.key))
			r.record(metrics.LoadMissing, start, nil, 0)
			return nil, core.WrapError(core.ErrNoData, err)
		}
		r.logger.Warn("snapshot read failed",
			zap.String("source", r.src.Name()), zap.String("key", r.key), zap.Error(err))
		r.record(metrics.LoadFailed, start, nil, 0)
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.record(metrics.LoadMissing, start, nil, 0)
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("%s holds a null document", r.key))
	}

	snap, err := Decode(data)
	if err != nil {
		r.logger.Warn("snapshot decode failed", zap.String("key", r.key), zap.Error(err))
		r.record(metrics.LoadInvalid, start, nil, 0)
		return nil, err
	}

	filled := chart.Backfill(snap.Results)

	r.logger.Debug("snapshot loaded",
		zap.String("source", r.src.Name()),
		zap.String("generated_at", snap.GeneratedAt),
		zap.Int("results", len(snap.Results)),
		zap.Int("chart_links_backfilled", filled),
	)
	r.record(metrics.LoadOK, start, snap, filled)

	return snap, nil
}

func (r *Reader) record(result string, start time.Time, snap *core.Snapshot, backfilled int) {
	if r.recorder == nil {
		return
	}
	instruments := 0
	if snap != nil {
		instruments = len(snap.Results)
	}
	r.recorder.RecordSnapshotLoad(result, time.Since(start).Seconds(), instruments, backfilled)
}

// Decode parses a snapshot document. Every result must name its symbol and
// carry a combined recommendation.
func Decode(data []byte) (*core.Snapshot, error) {
	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, core.WrapError(core.ErrSnapshotInvalid, err)
	}

	for i, res := range snap.Results {
		if res.Symbol == "" {
			return nil, core.WrapError(core.ErrSnapshotInvalid,
				fmt.Errorf("results[%d]: missing symbol", i))
		}
		if res.CombinedRecommendation == "" {
			return nil, core.WrapError(core.ErrSnapshotInvalid,
				fmt.Errorf("results[%d] (%s): missing combined_recommendation", i, res.Symbol))
		}
	}

	return &snap, nil
}
