package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sportstracker/internal/models"
	"sportstracker/internal/tracker"
)

const missing = "-"

// renderBoard writes one board: a heading, the schedule table, then the
// odds notice, constructor context, futures and news lines
func renderBoard(w io.Writer, b tracker.Board) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "== %s ==\n", b.Label)

	if len(b.Rows) == 0 {
		sb.WriteString("No events found in the current window.\n")
	} else {
		tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
		header := []string{"DATE/TIME", "MATCHUP", "SCORE", "STATUS"}
		if b.OddsAttached {
			header = append(header, "MONEYLINE", "SPREAD", "TOTAL")
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))

		for _, r := range b.Rows {
			cols := []string{r.DateTime, r.Matchup, r.Score, orMissing(r.Status)}
			if b.OddsAttached {
				odds := r.Odds
				if odds == nil {
					odds = &models.MarketSummary{}
				}
				cols = append(cols, orMissing(odds.Moneyline), orMissing(odds.Spread), orMissing(odds.Total))
			}
			fmt.Fprintln(tw, strings.Join(cols, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if b.Notice != "" && b.Notice != tracker.NoticeNoEvents {
		fmt.Fprintf(&sb, "note: %s\n", b.Notice)
	}

	if c := b.Constructor; c != nil {
		fmt.Fprintf(&sb, "constructor: %s rank %s, %s points\n", c.Team, c.Rank, c.Points)
	}

	fmt.Fprintf(&sb, "futures: %s", b.Outright.Status)
	if b.Outright.Playoff != "" {
		fmt.Fprintf(&sb, ", make playoffs %s", b.Outright.Playoff)
	}
	if b.Outright.Championship != "" {
		fmt.Fprintf(&sb, ", championship %s", b.Outright.Championship)
	}
	sb.WriteString("\n")

	if len(b.News) == 0 {
		sb.WriteString("news: none available\n")
	}
	for _, n := range b.News {
		fmt.Fprintf(&sb, "- %s (%s, %s)", n.Headline, n.Source, n.Published)
		if n.URL != "" {
			fmt.Fprintf(&sb, " %s", n.URL)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}
