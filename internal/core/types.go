package core

import "strings"

// Source identifies the market an instrument was analyzed from
type Source string

const (
	SourceForex  Source = "Forex"
	SourceCrypto Source = "Crypto"
)

// Recommendation is the combined verdict produced by the analyzer.
// Values outside the known vocabulary are kept verbatim.
type Recommendation string

const (
	RecStrongLong    Recommendation = "strong-long"
	RecStrongShort   Recommendation = "strong-short"
	RecLeanLong      Recommendation = "lean-long"
	RecLeanShort     Recommendation = "lean-short"
	RecProbeLong     Recommendation = "probe-long"
	RecProbeShort    Recommendation = "probe-short"
	RecWaitNeutral   Recommendation = "wait-neutral"
	RecWait          Recommendation = "wait"
	RecWaitLeanLong  Recommendation = "wait-lean-long"
	RecWaitLeanShort Recommendation = "wait-lean-short"
)

// Qualifiers embedded in recommendation values.
const (
	qualifierStrong = "strong"
	qualifierLong   = "long"
	qualifierShort  = "short"
	qualifierWait   = "wait"
)

// IsStrong reports whether the recommendation carries the strong qualifier.
func (r Recommendation) IsStrong() bool {
	return strings.Contains(string(r), qualifierStrong)
}

// IsLong reports whether the recommendation leans long, at any conviction.
func (r Recommendation) IsLong() bool {
	return strings.Contains(string(r), qualifierLong)
}

// IsShort reports whether the recommendation leans short, at any conviction.
func (r Recommendation) IsShort() bool {
	return strings.Contains(string(r), qualifierShort)
}

// IsWait reports whether the recommendation is in the wait family.
func (r Recommendation) IsWait() bool {
	return strings.Contains(string(r), qualifierWait)
}

// Trend is the per-timeframe trend classification
type Trend string

const (
	TrendStrongUp         Trend = "strong-uptrend"
	TrendStrongDown       Trend = "strong-downtrend"
	TrendRanging          Trend = "ranging"
	TrendUnclear          Trend = "unclear"
	TrendInsufficientData Trend = "insufficient-data"
)

// TimeframeReading is the Ichimoku snapshot for one timeframe
type TimeframeReading struct {
	Signals        []string `json:"signals" yaml:"signals"`
	Trend          Trend    `json:"trend" yaml:"trend"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
	Price          float64  `json:"price" yaml:"price"`
	TenkanSen      float64  `json:"tenkan_sen" yaml:"tenkan_sen"`
	KijunSen       float64  `json:"kijun_sen" yaml:"kijun_sen"`
	CloudBottom    float64  `json:"cloud_bottom" yaml:"cloud_bottom"`
	CloudTop       float64  `json:"cloud_top" yaml:"cloud_top"`
}

// InstrumentResult is one analyzed instrument
type InstrumentResult struct {
	Symbol                 string            `json:"symbol" yaml:"symbol"`
	Source                 Source            `json:"source" yaml:"source"`
	CombinedRecommendation Recommendation    `json:"combined_recommendation" yaml:"combined_recommendation"`
	CombinedExplanation    string            `json:"combined_explanation" yaml:"combined_explanation"`
	HasSignal              bool              `json:"has_signal" yaml:"has_signal"`
	Daily                  *TimeframeReading `json:"daily" yaml:"daily"`
	H4                     *TimeframeReading `json:"h4" yaml:"h4"`
	AIAdvice               string            `json:"ai_advice,omitempty" yaml:"ai_advice,omitempty"`
	AIProvider             string            `json:"ai_provider,omitempty" yaml:"ai_provider,omitempty"`
	AIModel                string            `json:"ai_model,omitempty" yaml:"ai_model,omitempty"`
	ChartURL               string            `json:"chart_url,omitempty" yaml:"chart_url,omitempty"`
}

// HasAIAdvice reports whether non-empty AI commentary is attached
func (r InstrumentResult) HasAIAdvice() bool {
	return r.AIAdvice != ""
}

// Price returns the representative price: daily first, then 4H.
func (r InstrumentResult) Price() (float64, bool) {
	switch {
	case r.Daily != nil:
		return r.Daily.Price, true
	case r.H4 != nil:
		return r.H4.Price, true
	default:
		return 0, false
	}
}

// Snapshot is the root artifact written by the analysis process
type Snapshot struct {
	GeneratedAt string             `json:"generated_at" yaml:"generated_at"`
	Results     []InstrumentResult `json:"results" yaml:"results"`
}
