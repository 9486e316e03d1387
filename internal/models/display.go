package models

import "time"

// Outright summary statuses
const (
	OutrightNotApplicable = "Not applicable"
	OutrightMissingAPIKey = "Missing API key"
	OutrightUnavailable   = "Unavailable"
	OutrightNoMarket      = "No market found"
	OutrightOK            = "OK"
)

// MarketSummary is the display-ready reduction of one odds event.
// An empty field means no bookmaker produced a usable quote for it.
type MarketSummary struct {
	Moneyline string `json:"moneyline,omitempty"`
	Spread    string `json:"spread,omitempty"`
	Total     string `json:"total,omitempty"`
}

// IsEmpty reports whether no market produced a value
func (s MarketSummary) IsEmpty() bool {
	return s.Moneyline == "" && s.Spread == "" && s.Total == ""
}

// DisplayRow is one schedule event joined with its optional market summary
type DisplayRow struct {
	EventID    string         `json:"event_id"`
	Start      time.Time      `json:"start,omitempty"`
	DateTime   string         `json:"date_time"`
	Away       string         `json:"away"`
	Home       string         `json:"home"`
	Matchup    string         `json:"matchup"`
	Score      string         `json:"score"`
	Status     string         `json:"status"`
	Name       string         `json:"name,omitempty"`
	ShortName  string         `json:"short_name,omitempty"`
	MatchupKey string         `json:"matchup_key"`
	Odds       *MarketSummary `json:"odds,omitempty"`
}

// OutrightSummary is the season-level (futures) view for one team
type OutrightSummary struct {
	Status       string `json:"status"`
	Playoff      string `json:"playoff_market,omitempty"`
	Championship string `json:"championship_market,omitempty"`
}

// NewsItem is a trimmed news article
type NewsItem struct {
	Headline  string `json:"headline"`
	Published string `json:"published"`
	Source    string `json:"source"`
	URL       string `json:"url"`
}

// ConstructorStanding is the championship position of a racing constructor
type ConstructorStanding struct {
	Team   string `json:"team"`
	Points string `json:"points"`
	Rank   string `json:"rank"`
}
