package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

// Display placeholders
const (
	NoSignalText     = "no signal"
	NotAvailable     = "-"
	UnknownTimestamp = "Unknown"
	UnknownGlyph     = "❓"
	HasAIGlyph       = "✅"
	NoAIGlyph        = "❌"
)

// RecommendationGlyph maps a combined recommendation to its emoji.
// Unknown values, including "", map to UnknownGlyph.
func RecommendationGlyph(rec core.Recommendation) string {
	switch rec {
	case core.RecStrongLong:
		return "🟢✨"
	case core.RecStrongShort:
		return "🔴✨"
	case core.RecLeanLong:
		return "📈"
	case core.RecLeanShort:
		return "📉"
	case core.RecProbeLong:
		return "🟡📈"
	case core.RecProbeShort:
		return "🟠📉"
	case core.RecWaitNeutral, core.RecWait:
		return "⏸️"
	case core.RecWaitLeanLong:
		return "⏸️📈"
	case core.RecWaitLeanShort:
		return "⏸️📉"
	default:
		return UnknownGlyph
	}
}

// TrendGlyph maps a trend to its emoji. Unknown trends map to "" so an
// unexpected value never draws attention.
func TrendGlyph(trend core.Trend) string {
	switch trend {
	case core.TrendStrongUp:
		return "💪🔥"
	case core.TrendStrongDown:
		return "💪❄️"
	case core.TrendRanging:
		return "↔️"
	case core.TrendUnclear:
		return "❓"
	case core.TrendInsufficientData:
		return "⚠️"
	default:
		return ""
	}
}

// SignalsText joins signal names in their given order.
func SignalsText(signals []string) string {
	if len(signals) == 0 {
		return NoSignalText
	}
	return strings.Join(signals, " / ")
}

// SourceGlyph returns the table glyph for a source. Anything that is not
// forex is shown as crypto.
func SourceGlyph(src core.Source) string {
	if src == core.SourceForex {
		return "💱"
	}
	return "🪙"
}

// SourceLabel returns the card badge for a source.
func SourceLabel(src core.Source) string {
	if src == core.SourceForex {
		return "💱 Forex"
	}
	return "🪙 Crypto"
}

// FormatNumber renders an indicator value with 4 decimals.
func FormatNumber(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// Accepted generated_at layouts, tried in order. Layouts without a zone are
// interpreted in the display location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

const displayLayout = "2006-01-02 15:04:05"

// ParseGeneratedAt parses a snapshot timestamp. Zone-aware values are
// converted into loc; naive values are interpreted in it.
func ParseGeneratedAt(raw string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatGeneratedAt renders the snapshot timestamp in loc. Values that do
// not parse are returned verbatim; an empty value renders as Unknown.
func FormatGeneratedAt(raw string, loc *time.Location) string {
	if raw == "" {
		return UnknownTimestamp
	}
	if t, ok := ParseGeneratedAt(raw, loc); ok {
		return t.Format(displayLayout)
	}
	return raw
}

// FormatUTCOffset renders a zone offset as "UTC", "UTC+8" or "UTC-3:30".
func FormatUTCOffset(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "UTC"
	}
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours := offsetSeconds / 3600
	minutes := (offsetSeconds % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
}

// ZoneLabel returns the current UTC offset label of loc.
func ZoneLabel(loc *time.Location, now time.Time) string {
	if loc == nil {
		loc = time.UTC
	}
	_, offset := now.In(loc).Zone()
	return FormatUTCOffset(offset)
}
