package reconcile

import (
	"testing"
	"time"

	"sportstracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func penguinsRangersOdds(commence string) models.OddsEvent {
	return models.OddsEvent{
		HomeTeam:     "New York Rangers",
		AwayTeam:     "Pittsburgh Penguins",
		CommenceTime: commence,
		Bookmakers: []models.Bookmaker{{Markets: []models.Market{
			{Key: models.MarketH2H, Outcomes: []models.Outcome{
				{Name: "New York Rangers", Price: price(-135)},
				{Name: "Pittsburgh Penguins", Price: price(115)},
			}},
			{Key: models.MarketSpreads, Outcomes: []models.Outcome{
				{Name: "New York Rangers", Price: price(170), Point: price(-1.5)},
				{Name: "Pittsburgh Penguins", Price: price(-200), Point: price(1.5)},
			}},
			{Key: models.MarketTotals, Outcomes: []models.Outcome{
				{Name: "Over", Price: price(-110), Point: price(6)},
				{Name: "Under", Price: price(-110), Point: price(6)},
			}},
		}}},
	}
}

func penguinsAtRangers(date string) models.ScheduleEvent {
	return models.ScheduleEvent{
		ID:                "401559",
		Date:              date,
		CompetitionStatus: "Scheduled",
		Participants: []models.Participant{
			{Name: "New York Rangers", HomeAway: "home"},
			{Name: "Pittsburgh Penguins", HomeAway: "away"},
		},
	}
}

func TestJoin_AttachesMarkets(t *testing.T) {
	index := BuildIndex([]models.OddsEvent{penguinsRangersOdds("2024-03-01T23:00:00Z")})
	rows := Join([]models.ScheduleEvent{penguinsAtRangers("2024-03-01T23:00Z")}, index, time.UTC)

	require.Len(t, rows, 1)
	row := rows[0]
	require.NotNil(t, row.Odds, "Matching names and date should attach markets")
	assert.Equal(t, "Pittsburgh Penguins +115 / New York Rangers -135", row.Odds.Moneyline)
	assert.Equal(t, "-1.5 (+170)", row.Odds.Spread)
	assert.Equal(t, "O/U 6 (-110)", row.Odds.Total)
	assert.Equal(t, "Pittsburgh Penguins @ New York Rangers", row.Matchup)
	assert.Equal(t, "2024-03-01 11:00 PM", row.DateTime)
	assert.Equal(t, "-", row.Score)
	assert.Equal(t, "Scheduled", row.Status)
}

func TestJoin_DateShiftBreaksMatch(t *testing.T) {
	schedule := []models.ScheduleEvent{penguinsAtRangers("2024-03-01T23:00Z")}

	index := BuildIndex([]models.OddsEvent{penguinsRangersOdds("2024-03-02T23:00:00Z")})
	rows := Join(schedule, index, time.UTC)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Odds, "Odds feed a day later should not match")

	index = BuildIndex([]models.OddsEvent{penguinsRangersOdds("2024-03-01T23:00:00Z")})
	rows = Join([]models.ScheduleEvent{penguinsAtRangers("2024-02-29T23:00Z")}, index, time.UTC)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Odds, "Schedule feed a day earlier should not match")
}

func TestJoin_SwappedRolesDoNotMatch(t *testing.T) {
	odds := penguinsRangersOdds("2024-03-01T23:00:00Z")
	odds.HomeTeam, odds.AwayTeam = odds.AwayTeam, odds.HomeTeam

	rows := Join([]models.ScheduleEvent{penguinsAtRangers("2024-03-01T23:00Z")}, BuildIndex([]models.OddsEvent{odds}), time.UTC)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Odds)
}

func TestJoin_PreservesOrder(t *testing.T) {
	events := []models.ScheduleEvent{
		game("c", "Team C", "Team D"),
		game("a", "Team A", "Team B"),
		game("b", "Team E", "Team F"),
	}

	rows := Join(events, nil, time.UTC)
	require.Len(t, rows, 3)
	assert.Equal(t, "c", rows[0].EventID)
	assert.Equal(t, "a", rows[1].EventID)
	assert.Equal(t, "b", rows[2].EventID)
	for _, r := range rows {
		assert.Nil(t, r.Odds)
	}
}

func TestBuildIndex_SkipsEmptySummaries(t *testing.T) {
	empty := models.OddsEvent{HomeTeam: "A", AwayTeam: "B", CommenceTime: "2024-01-01T00:00:00Z"}
	index := BuildIndex([]models.OddsEvent{empty})
	assert.Empty(t, index)

	assert.Empty(t, BuildIndex(nil))
}

func TestFormatRow_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		event   models.ScheduleEvent
		matchup string
		score   string
		key     string
		status  string
	}{
		{
			name:    "no participants",
			event:   models.ScheduleEvent{EventStatus: "Postponed"},
			matchup: "TBD @ TBD",
			score:   "-",
			key:     "||",
			status:  "Postponed",
		},
		{
			name: "single participant",
			event: models.ScheduleEvent{
				Date:         "2024-05-26T10:00Z",
				Participants: []models.Participant{{Name: "Carlos Alcaraz", Score: "6"}},
			},
			matchup: "Carlos Alcaraz @ TBD",
			score:   "-",
			key:     "carlos alcaraz||2024-05-26",
		},
		{
			name: "missing names and role labels",
			event: models.ScheduleEvent{
				Date:              "2024-05-26T10:00Z",
				CompetitionStatus: "Final",
				EventStatus:       "Scheduled",
				Participants:      []models.Participant{{Score: "3"}, {Name: "Home Side", Score: "1"}},
			},
			matchup: "Away @ Home Side",
			score:   "3-1",
			key:     "|home side|2024-05-26",
			status:  "Final",
		},
		{
			name: "one score present",
			event: models.ScheduleEvent{
				Participants: []models.Participant{
					{Name: "B", HomeAway: "home", Score: "2"},
					{Name: "A", HomeAway: "away"},
				},
			},
			matchup: "A @ B",
			score:   "-2",
			key:     "a|b|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := FormatRow(tt.event, time.UTC)
			assert.Equal(t, tt.matchup, row.Matchup)
			assert.Equal(t, tt.score, row.Score)
			assert.Equal(t, tt.key, row.MatchupKey)
			assert.Equal(t, tt.status, row.Status)
		})
	}
}

func TestFormatRow_UnparsableDate(t *testing.T) {
	row := FormatRow(models.ScheduleEvent{Date: "soon"}, time.UTC)
	assert.Equal(t, "-", row.DateTime)
	assert.True(t, row.Start.IsZero())
}

func TestFormatRow_LocalTime(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	row := FormatRow(penguinsAtRangers("2024-03-01T23:00Z"), ny)
	assert.Equal(t, "2024-03-01 06:00 PM", row.DateTime)
	assert.Equal(t, "pittsburgh penguins|new york rangers|2024-03-01", row.MatchupKey,
		"Key should use the feed's date, not the display zone")
}
