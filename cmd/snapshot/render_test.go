package main

import (
	"strings"
	"testing"

	"sportstracker/internal/config"
	"sportstracker/internal/models"
	"sportstracker/internal/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard_WithOdds(t *testing.T) {
	b := tracker.Board{
		Label:        "LA Lakers",
		OddsAttached: true,
		Rows: []models.DisplayRow{
			{
				DateTime: "2024-03-01 07:30 PM",
				Matchup:  "Denver Nuggets @ Los Angeles Lakers",
				Score:    "-",
				Status:   "Scheduled",
				Odds:     &models.MarketSummary{Moneyline: "Denver Nuggets +130 / Los Angeles Lakers -150", Total: "O/U 224.5 (-110)"},
			},
			{
				DateTime: "2024-02-27 10:00 PM",
				Matchup:  "Los Angeles Lakers @ Phoenix Suns",
				Score:    "110-104",
				Status:   "Final",
			},
		},
		Outright: models.OutrightSummary{Status: models.OutrightOK, Championship: "+1200"},
		News:     []models.NewsItem{{Headline: "LeBron", Source: "ESPN", Published: "2024-03-01", URL: "https://example.test/n"}},
	}

	var sb strings.Builder
	require.NoError(t, renderBoard(&sb, b))
	out := sb.String()
	lines := strings.Split(out, "\n")

	assert.Equal(t, "== LA Lakers ==", lines[0])
	assert.Contains(t, lines[1], "MONEYLINE")
	assert.Contains(t, lines[2], "Denver Nuggets +130 / Los Angeles Lakers -150")
	assert.Contains(t, lines[2], "O/U 224.5 (-110)")
	fields := strings.Fields(lines[3])
	require.GreaterOrEqual(t, len(fields), 3)
	assert.Equal(t, []string{"-", "-", "-"}, fields[len(fields)-3:],
		"Rows without odds should show a dash per market column")
	assert.Contains(t, out, "futures: OK, championship +1200")
	assert.Contains(t, out, "- LeBron (ESPN, 2024-03-01) https://example.test/n")
}

func TestRenderBoard_EmptyWithNotice(t *testing.T) {
	b := tracker.Board{
		Label:       "Formula 1 (Mercedes)",
		Notice:      tracker.NoticeMissingAPIKey,
		Rows:        []models.DisplayRow{{DateTime: "-", Matchup: "TBD @ TBD", Score: "-"}},
		Outright:    models.OutrightSummary{Status: models.OutrightMissingAPIKey},
		Constructor: &models.ConstructorStanding{Team: "Mercedes", Rank: "2", Points: "409"},
	}

	var sb strings.Builder
	require.NoError(t, renderBoard(&sb, b))
	out := sb.String()

	assert.NotContains(t, out, "MONEYLINE")
	assert.Contains(t, out, "note: "+tracker.NoticeMissingAPIKey)
	assert.Contains(t, out, "constructor: Mercedes rank 2, 409 points")
	assert.Contains(t, out, "futures: Missing API key\n")
	assert.Contains(t, out, "news: none available")
}

func TestRenderBoard_NoRows(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, renderBoard(&sb, tracker.Board{Label: "Slams", Notice: tracker.NoticeNoEvents, Outright: models.OutrightSummary{Status: models.OutrightNotApplicable}}))

	out := sb.String()
	assert.Contains(t, out, "No events found in the current window.")
	assert.Equal(t, 1, strings.Count(out, "No events found"))
}

func TestSelectTracker(t *testing.T) {
	trackers := config.DefaultTrackers()

	got := selectTracker(trackers, "ny_knicks")
	require.Len(t, got, 1)
	assert.Equal(t, "New York Knicks", got[0].TeamName)

	assert.Nil(t, selectTracker(trackers, "boston_celtics"))
}
