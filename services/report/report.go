package report

import (
	"cashtag-mentions/models/entities"
	"cashtag-mentions/pkg/observer"
	"cashtag-mentions/utils/dates"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog/log"
)

func New(out io.Writer) *Impl {
	return &Impl{out: out}
}

// Build ranks the counts and attaches the run metadata.
func Build(counts entities.TickerCount, meta Meta) entities.Report {
	report := entities.Report{
		WindowStartUTC: dates.ToWireTimestamp(meta.Window.Start),
		WindowEndUTC:   dates.ToWireTimestamp(meta.Window.End),
		PostsScanned:   meta.PostsScanned,
		Tickers:        Rank(counts),
	}

	if meta.Account != "" {
		report.Account = "@" + meta.Account
	} else {
		report.Handles = append(make([]string, 0, len(meta.Handles)), meta.Handles...)
	}

	return report
}

// Rank sorts by descending mentions, ties broken by ascending ticker.
func Rank(counts entities.TickerCount) []entities.TickerMention {
	tickers := make([]entities.TickerMention, 0, len(counts))
	for ticker, mentions := range counts {
		tickers = append(tickers, entities.TickerMention{Ticker: ticker, Mentions: mentions})
	}

	sort.Slice(tickers, func(i, j int) bool {
		if tickers[i].Mentions != tickers[j].Mentions {
			return tickers[i].Mentions > tickers[j].Mentions
		}
		return tickers[i].Ticker < tickers[j].Ticker
	})

	return tickers
}

// Print writes the report as indented JSON.
func (service *Impl) Print(report entities.Report) error {
	if report.Tickers == nil {
		report.Tickers = make([]entities.TickerMention, 0)
	}

	encoder := json.NewEncoder(service.out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func (service *Impl) OnNotify(e observer.Event) {
	if e.E != observer.ReportEvent || e.Report == nil {
		return
	}

	if err := service.Print(*e.Report); err != nil {
		log.Error().Err(err).Msg("Cannot print report")
	}
}
