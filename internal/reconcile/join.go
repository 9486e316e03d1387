package reconcile

import (
	"time"

	"sportstracker/internal/models"
)

// DisplayTimeLayout is the local date/time format of a DisplayRow
const DisplayTimeLayout = "2006-01-02 03:04 PM"

// OddsIndex maps a matchup key to the reduced markets of that contest.
// It is built once per pass by BuildIndex and only read afterwards.
type OddsIndex map[string]models.MarketSummary

// BuildIndex reduces every odds event and indexes the non-empty summaries by
// matchup key. When two events share a key the later one wins.
func BuildIndex(events []models.OddsEvent) OddsIndex {
	index := make(OddsIndex, len(events))
	for _, ev := range events {
		summary := Reduce(ev)
		if summary.IsEmpty() {
			continue
		}
		index[BuildKey(ev.AwayTeam, ev.HomeTeam, ev.CommenceTime)] = summary
	}
	return index
}

// Lookup returns the summary stored under key
func (idx OddsIndex) Lookup(key string) (models.MarketSummary, bool) {
	s, ok := idx[key]
	return s, ok
}

// EventKey is the matchup key of a schedule event, using the feed's own
// away/home assignment. With fewer than two participants the only one is
// taken as away and home is empty.
func EventKey(e models.ScheduleEvent) string {
	if away, home, ok := e.Sides(); ok {
		return BuildKey(away.Name, home.Name, e.Date)
	}

	away := ""
	if len(e.Participants) == 1 {
		away = e.Participants[0].Name
	}
	return BuildKey(away, "", e.Date)
}

// FormatRow computes the display fields of a schedule event in loc
func FormatRow(e models.ScheduleEvent, loc *time.Location) models.DisplayRow {
	row := models.DisplayRow{
		EventID:    e.ID,
		Name:       e.Name,
		ShortName:  e.ShortName,
		Status:     e.Status(),
		MatchupKey: EventKey(e),
		DateTime:   "-",
		Score:      "-",
	}

	if away, home, ok := e.Sides(); ok {
		row.Away = orDefault(away.Name, "Away")
		row.Home = orDefault(home.Name, "Home")
		if away.Score != "" || home.Score != "" {
			row.Score = away.Score + "-" + home.Score
		}
	} else {
		row.Away = "TBD"
		if len(e.Participants) == 1 {
			row.Away = orDefault(e.Participants[0].Name, "TBD")
		}
		row.Home = "TBD"
	}
	row.Matchup = row.Away + " @ " + row.Home

	if t, ok := ParseInstant(e.Date); ok {
		if loc == nil {
			loc = time.Local
		}
		row.Start = t
		row.DateTime = t.In(loc).Format(DisplayTimeLayout)
	}

	return row
}

// Join builds one DisplayRow per schedule event, in input order, attaching
// the indexed market summary when the event's matchup key is present.
func Join(events []models.ScheduleEvent, index OddsIndex, loc *time.Location) []models.DisplayRow {
	rows := make([]models.DisplayRow, 0, len(events))
	for _, e := range events {
		row := FormatRow(e, loc)
		if summary, ok := index.Lookup(row.MatchupKey); ok {
			s := summary
			row.Odds = &s
		}
		rows = append(rows, row)
	}
	return rows
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
