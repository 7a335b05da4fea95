package dashboard

import (
	"sort"

	"github.com/newthinker/ichimoku-dashboard/internal/chart"
	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

// Row is one flat line of the results table
type Row struct {
	Symbol         string `json:"symbol" yaml:"symbol"`
	Source         string `json:"source" yaml:"source"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
	DailySignals   string `json:"daily_signals" yaml:"daily_signals"`
	H4Signals      string `json:"h4_signals" yaml:"h4_signals"`
	DailyTrend     string `json:"daily_trend" yaml:"daily_trend"`
	H4Trend        string `json:"h4_trend" yaml:"h4_trend"`
	Price          string `json:"price" yaml:"price"`
	AI             string `json:"ai" yaml:"ai"`
	ChartURL       string `json:"chart_url" yaml:"chart_url"`
}

// Rows projects records into table rows, keeping their order.
func Rows(records []core.InstrumentResult) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRow(r))
	}
	return rows
}

func toRow(r core.InstrumentResult) Row {
	row := Row{
		Symbol:         r.Symbol,
		Source:         SourceGlyph(r.Source),
		Recommendation: RecommendationGlyph(r.CombinedRecommendation) + " " + string(r.CombinedRecommendation),
		DailySignals:   NotAvailable,
		H4Signals:      NotAvailable,
		DailyTrend:     NotAvailable,
		H4Trend:        NotAvailable,
		Price:          NotAvailable,
		AI:             NoAIGlyph,
		ChartURL:       r.ChartURL,
	}
	if r.Daily != nil {
		row.DailySignals = SignalsText(r.Daily.Signals)
		row.DailyTrend = string(r.Daily.Trend)
	}
	if r.H4 != nil {
		row.H4Signals = SignalsText(r.H4.Signals)
		row.H4Trend = string(r.H4.Trend)
	}
	if p, ok := r.Price(); ok {
		row.Price = FormatNumber(p)
	}
	if r.HasAIAdvice() {
		row.AI = HasAIGlyph
	}
	return row
}

// Tone is the directional color family of a card header
type Tone string

const (
	ToneLong    Tone = "long"
	ToneShort   Tone = "short"
	ToneNeutral Tone = "neutral"
)

// Color returns the header background for the tone.
func (t Tone) Color() string {
	switch t {
	case ToneLong:
		return "#1a472a"
	case ToneShort:
		return "#4a1a1a"
	default:
		return "#3d3d3d"
	}
}

// HeaderTone picks a card tone by the directional qualifier in rec.
// probe-long and probe-short are colored too.
func HeaderTone(rec core.Recommendation) Tone {
	switch {
	case rec.IsLong():
		return ToneLong
	case rec.IsShort():
		return ToneShort
	default:
		return ToneNeutral
	}
}

// AIBlock is attached AI commentary
type AIBlock struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Advice   string `json:"advice"`
}

// defaultAIProvider labels advice that arrives without a provider.
const defaultAIProvider = "AI"

// Panel is one timeframe column of a card. When Available is false only
// Title is set and the panel renders as insufficient data.
type Panel struct {
	Title          string `json:"title"`
	Available      bool   `json:"available"`
	Signals        string `json:"signals,omitempty"`
	Trend          string `json:"trend,omitempty"`
	TrendGlyph     string `json:"trend_glyph,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Price          string `json:"price,omitempty"`
	TenkanSen      string `json:"tenkan_sen,omitempty"`
	KijunSen       string `json:"kijun_sen,omitempty"`
	CloudBottom    string `json:"cloud_bottom,omitempty"`
	CloudTop       string `json:"cloud_top,omitempty"`
}

// Panel titles
const (
	DailyTitle = "📊 Daily (1D)"
	H4Title    = "⏰ 4 Hour (4H)"
)

func toPanel(title string, tf *core.TimeframeReading) Panel {
	if tf == nil {
		return Panel{Title: title}
	}
	return Panel{
		Title:          title,
		Available:      true,
		Signals:        SignalsText(tf.Signals),
		Trend:          string(tf.Trend),
		TrendGlyph:     TrendGlyph(tf.Trend),
		Recommendation: tf.Recommendation,
		Price:          FormatNumber(tf.Price),
		TenkanSen:      FormatNumber(tf.TenkanSen),
		KijunSen:       FormatNumber(tf.KijunSen),
		CloudBottom:    FormatNumber(tf.CloudBottom),
		CloudTop:       FormatNumber(tf.CloudTop),
	}
}

// Card is the detail view of one instrument
type Card struct {
	Symbol         string              `json:"symbol"`
	Anchor         string              `json:"anchor"`
	SourceLabel    string              `json:"source_label"`
	ChartURL       string              `json:"chart_url"`
	Glyph          string              `json:"glyph"`
	Recommendation core.Recommendation `json:"recommendation"`
	Explanation    string              `json:"explanation"`
	Tone           Tone                `json:"tone"`
	HeaderColor    string              `json:"header_color"`
	AI             *AIBlock            `json:"ai,omitempty"`
	Daily          Panel               `json:"daily"`
	H4             Panel               `json:"h4"`
}

// Cards sorts a copy of records by recommendation priority and projects
// each into a Card.
func Cards(records []core.InstrumentResult) []Card {
	sorted := SortByPriority(records)
	cards := make([]Card, 0, len(sorted))
	for _, r := range sorted {
		cards = append(cards, toCard(r))
	}
	return cards
}

func toCard(r core.InstrumentResult) Card {
	tone := HeaderTone(r.CombinedRecommendation)
	card := Card{
		Symbol:         r.Symbol,
		Anchor:         "card-" + chart.Ticker(r.Symbol, r.Source),
		SourceLabel:    SourceLabel(r.Source),
		ChartURL:       r.ChartURL,
		Glyph:          RecommendationGlyph(r.CombinedRecommendation),
		Recommendation: r.CombinedRecommendation,
		Explanation:    r.CombinedExplanation,
		Tone:           tone,
		HeaderColor:    tone.Color(),
		Daily:          toPanel(DailyTitle, r.Daily),
		H4:             toPanel(H4Title, r.H4),
	}
	if card.ChartURL == "" {
		card.ChartURL = "#"
	}
	if r.HasAIAdvice() {
		provider := r.AIProvider
		if provider == "" {
			provider = defaultAIProvider
		}
		card.AI = &AIBlock{Provider: provider, Model: r.AIModel, Advice: r.AIAdvice}
	}
	return card
}

// UnrankedPriority is the sort rank of recommendations outside the table.
const UnrankedPriority = 99

// Priority returns the card sort rank of rec; lower sorts first.
func Priority(rec core.Recommendation) int {
	switch rec {
	case core.RecStrongLong:
		return 0
	case core.RecStrongShort:
		return 1
	case core.RecLeanLong:
		return 2
	case core.RecLeanShort:
		return 3
	case core.RecProbeLong:
		return 4
	case core.RecProbeShort:
		return 5
	case core.RecWaitNeutral:
		return 6
	case core.RecWait:
		return 7
	default:
		return UnrankedPriority
	}
}

// SortByPriority returns a copy of records stably sorted by Priority.
func SortByPriority(records []core.InstrumentResult) []core.InstrumentResult {
	sorted := make([]core.InstrumentResult, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Priority(sorted[i].CombinedRecommendation) < Priority(sorted[j].CombinedRecommendation)
	})
	return sorted
}

// Grid splits cards into rows of at most cols cards.
func Grid(cards []Card, cols int) [][]Card {
	if cols < 1 {
		cols = 1
	}
	grid := make([][]Card, 0, (len(cards)+cols-1)/cols)
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		grid = append(grid, cards[i:end])
	}
	return grid
}
