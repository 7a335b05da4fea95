package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/newthinker/ichimoku-dashboard/internal/dashboard"
	"github.com/newthinker/ichimoku-dashboard/internal/logger"
	"github.com/newthinker/ichimoku-dashboard/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats of the show command
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var showOpts struct {
	output         string
	source         string
	recommendation string
	signal         bool
	ai             bool
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the dashboard summary and results table",
	Long: `show loads the current snapshot once and prints the summary metrics and
the filtered results table. Filters match the web dashboard.`,
	RunE: runShow,
}

func init() {
	f := showCmd.Flags()
	f.StringVarP(&showOpts.output, "output", "o", formatTable, "output format: table, json or yaml")
	f.StringVar(&showOpts.source, "source", "all", "source filter: all, crypto or forex")
	f.StringVar(&showOpts.recommendation, "rec", "all", "recommendation filter: all, strong, long, short or wait")
	f.BoolVar(&showOpts.signal, "signal", false, "only instruments with a signal (default from display.only_with_signal_default)")
	f.BoolVar(&showOpts.ai, "ai", false, "only instruments with AI advice")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	f := dashboard.Filter{
		OnlyWithSignal:   cfg.Display.OnlyWithSignalDefault,
		OnlyWithAIAdvice: showOpts.ai,
	}
	if cmd.Flags().Changed("signal") {
		f.OnlyWithSignal = showOpts.signal
	}
	if f.Source, err = dashboard.ParseSourceFilter(showOpts.source); err != nil {
		return err
	}
	if f.Recommendation, err = dashboard.ParseRecommendationFilter(showOpts.recommendation); err != nil {
		return err
	}

	reader, err := newReader(cfg, log, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	snap, loadErr := reader.Load(ctx)
	page := dashboard.Build(snap, loadErr, f, cfg.Display.Location())

	log.Debug("dashboard built",
		zap.String("surface", metrics.SurfaceCLI),
		zap.String("state", string(page.State)),
		zap.Int("count", page.Count),
	)

	return renderPage(cmd.OutOrStdout(), page, showOpts.output)
}

// report is the serialized form of a page for json and yaml output.
type report struct {
	State       dashboard.State    `json:"state" yaml:"state"`
	Message     string             `json:"message,omitempty" yaml:"message,omitempty"`
	UpdatedAt   string             `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	UpdatedZone string             `json:"updated_zone,omitempty" yaml:"updated_zone,omitempty"`
	Summary     *dashboard.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Count       int                `json:"count" yaml:"count"`
	Rows        []dashboard.Row    `json:"rows" yaml:"rows"`
}

func newReport(page dashboard.Page) report {
	return report{
		State:       page.State,
		Message:     page.Message,
		UpdatedAt:   page.UpdatedAt,
		UpdatedZone: page.UpdatedZone,
		Summary:     page.Summary,
		Count:       page.Count,
		Rows:        page.Rows,
	}
}

func renderPage(w io.Writer, page dashboard.Page, format string) error {
	switch format {
	case formatTable:
		return renderTable(w, page)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newReport(page))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newReport(page)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, page dashboard.Page) error {
	switch page.State {
	case dashboard.StateNoData, dashboard.StateError:
		_, err := fmt.Fprintf(w, "⚠️  %s\n", page.Message)
		return err
	}

	fmt.Fprintf(w, "Last updated: %s (%s)\n", page.UpdatedAt, page.UpdatedZone)
	if page.State == dashboard.StateEmpty {
		_, err := fmt.Fprintln(w, page.Message)
		return err
	}

	if s := page.Summary; s != nil {
		fmt.Fprintf(w, "Instruments: %d  With signal: %d  Strong long: %d  Strong short: %d  AI advice: %d\n",
			s.Total, s.WithSignal, s.StrongLong, s.StrongShort, s.WithAIAdvice)
	}
	fmt.Fprintf(w, "Results (%d instruments)\n\n", page.Count)

	if page.State == dashboard.StateFilteredEmpty {
		_, err := fmt.Fprintln(w, page.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tSRC\tRECOMMENDATION\tDAILY SIGNALS\t4H SIGNALS\tDAILY TREND\t4H TREND\tPRICE\tAI\tCHART\t")
	fmt.Fprintln(tw, "------\t---\t--------------\t-------------\t----------\t-----------\t--------\t-----\t--\t-----\t")
	for _, r := range page.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Symbol, r.Source, r.Recommendation, r.DailySignals, r.H4Signals,
			r.DailyTrend, r.H4Trend, r.Price, r.AI, r.ChartURL)
	}
	return tw.Flush()
}
