package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

// SourceFilter restricts results to one market
type SourceFilter string

const (
	SourceAll    SourceFilter = "all"
	SourceCrypto SourceFilter = "crypto"
	SourceForex  SourceFilter = "forex"
)

// RecommendationFilter selects a recommendation category. Categories
// overlap: strong-long matches both RecStrong and RecLong.
type RecommendationFilter string

const (
	RecAll    RecommendationFilter = "all"
	RecStrong RecommendationFilter = "strong"
	RecLong   RecommendationFilter = "long"
	RecShort  RecommendationFilter = "short"
	RecWait   RecommendationFilter = "wait"
)

// Filter is the set of user-selected predicates, combined with AND.
// The zero value keeps every record.
type Filter struct {
	Source           SourceFilter         `json:"source"`
	Recommendation   RecommendationFilter `json:"recommendation"`
	OnlyWithSignal   bool                 `json:"only_with_signal"`
	OnlyWithAIAdvice bool                 `json:"only_with_ai_advice"`
}

// Match reports whether r passes every enabled predicate.
func (f Filter) Match(r core.InstrumentResult) bool {
	switch f.Source {
	case SourceCrypto:
		if r.Source != core.SourceCrypto {
			return false
		}
	case SourceForex:
		if r.Source != core.SourceForex {
			return false
		}
	}

	rec := r.CombinedRecommendation
	switch f.Recommendation {
	case RecStrong:
		if !rec.IsStrong() {
			return false
		}
	case RecLong:
		if !rec.IsLong() {
			return false
		}
	case RecShort:
		if !rec.IsShort() {
			return false
		}
	case RecWait:
		if !rec.IsWait() {
			return false
		}
	}

	if f.OnlyWithSignal && !r.HasSignal {
		return false
	}
	if f.OnlyWithAIAdvice && !r.HasAIAdvice() {
		return false
	}
	return true
}

// Apply returns the records that match f, in input order. The input slice
// is not modified.
func Apply(records []core.InstrumentResult, f Filter) []core.InstrumentResult {
	out := make([]core.InstrumentResult, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseSourceFilter parses a source option. "" means all.
func ParseSourceFilter(s string) (SourceFilter, error) {
	switch SourceFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceAll:
		return SourceAll, nil
	case SourceCrypto:
		return SourceCrypto, nil
	case SourceForex:
		return SourceForex, nil
	default:
		return "", core.WrapError(core.ErrBadRequest, fmt.Errorf("unknown source filter %q", s))
	}
}

// ParseRecommendationFilter parses a recommendation option. "" means all.
func ParseRecommendationFilter(s string) (RecommendationFilter, error) {
	switch RecommendationFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", RecAll:
		return RecAll, nil
	case RecStrong:
		return RecStrong, nil
	case RecLong:
		return RecLong, nil
	case RecShort:
		return RecShort, nil
	case RecWait:
		return RecWait, nil
	default:
		return "", core.WrapError(core.ErrBadRequest, fmt.Errorf("unknown recommendation filter %q", s))
	}
}

// Query parameter names understood by ParseFilter
const (
	ParamSource         = "source"
	ParamRecommendation = "rec"
	ParamSignal         = "signal"
	ParamAIAdvice       = "ai"
	ParamApplied        = "applied"
)

// ParseFilter builds a Filter from request parameters.
//
// HTML checkboxes are omitted from a submitted form when unchecked, so the
// form also sends ParamApplied. Until it does, the signal toggle takes
// signalDefault. An explicit signal or ai parameter always wins.
func ParseFilter(q url.Values, signalDefault bool) (Filter, error) {
	var f Filter
	var err error

	if f.Source, err = ParseSourceFilter(q.Get(ParamSource)); err != nil {
		return Filter{}, err
	}
	if f.Recommendation, err = ParseRecommendationFilter(q.Get(ParamRecommendation)); err != nil {
		return Filter{}, err
	}

	applied := q.Get(ParamApplied) != ""

	f.OnlyWithSignal = signalDefault && !applied
	if q.Has(ParamSignal) {
		if f.OnlyWithSignal, err = parseFlag(ParamSignal, q.Get(ParamSignal)); err != nil {
			return Filter{}, err
		}
	}

	if q.Has(ParamAIAdvice) {
		if f.OnlyWithAIAdvice, err = parseFlag(ParamAIAdvice, q.Get(ParamAIAdvice)); err != nil {
			return Filter{}, err
		}
	}

	return f, nil
}

// Values is the inverse of ParseFilter.
func (f Filter) Values() url.Values {
	q := url.Values{}
	if f.Source != "" && f.Source != SourceAll {
		q.Set(ParamSource, string(f.Source))
	}
	if f.Recommendation != "" && f.Recommendation != RecAll {
		q.Set(ParamRecommendation, string(f.Recommendation))
	}
	q.Set(ParamSignal, strconv.FormatBool(f.OnlyWithSignal))
	q.Set(ParamAIAdvice, strconv.FormatBool(f.OnlyWithAIAdvice))
	return q
}

func parseFlag(name, v string) (bool, error) {
	if strings.EqualFold(v, "on") || v == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, core.WrapError(core.ErrBadRequest, fmt.Errorf("%s: %q is not a boolean", name, v))
	}
	return b, nil
}
