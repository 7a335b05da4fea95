package dashboard

import "github.com/newthinker/ichimoku-dashboard/internal/core"

// Summary holds headline counts over the full, unfiltered snapshot
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	WithSignal   int `json:"with_signal" yaml:"with_signal"`
	StrongLong   int `json:"strong_long" yaml:"strong_long"`
	StrongShort  int `json:"strong_short" yaml:"strong_short"`
	WithAIAdvice int `json:"with_ai_advice" yaml:"with_ai_advice"`
}

// Summarize counts records. Strong counts use exact matches, unlike the
// overlapping RecStrong filter category.
func Summarize(records []core.InstrumentResult) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.HasSignal {
			s.WithSignal++
		}
		switch r.CombinedRecommendation {
		case core.RecStrongLong:
			s.StrongLong++
		case core.RecStrongShort:
			s.StrongShort++
		}
		if r.HasAIAdvice() {
			s.WithAIAdvice++
		}
	}
	return s
}
