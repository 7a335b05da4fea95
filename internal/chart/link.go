// Package chart derives external charting links for analyzed instruments.
package chart

import (
	"strings"

	"github.com/newthinker/ichimoku-dashboard/internal/core"
)

const baseURL = "https://www.tradingview.com/chart/?symbol="

// Exchange prefixes used by the charting service
const (
	ForexPrefix  = "FX:"
	CryptoPrefix = "OKX:"
)

// Ticker returns the symbol without its pair separator: "/" for forex,
// "-" for everything else.
func Ticker(symbol string, source core.Source) string {
	if source == core.SourceForex {
		return strings.ReplaceAll(symbol, "/", "")
	}
	return strings.ReplaceAll(symbol, "-", "")
}

// Resolve returns the TradingView chart URL for a symbol.
// Forex pairs become "FX:EURUSD"; everything else is treated as an OKX
// spot pair ("BTC-USDT" -> "OKX:BTCUSDT"). The symbol is not validated.
func Resolve(symbol string, source core.Source) string {
	if source == core.SourceForex {
		return baseURL + ForexPrefix + Ticker(symbol, source)
	}
	return baseURL + CryptoPrefix + Ticker(symbol, source)
}

// Backfill sets ChartURL on every result that lacks one and returns how many
// were filled. Results are modified in place.
func Backfill(results []core.InstrumentResult) int {
	filled := 0
	for i := range results {
		if results[i].ChartURL == "" {
			results[i].ChartURL = Resolve(results[i].Symbol, results[i].Source)
			filled++
		}
	}
	return filled
}
