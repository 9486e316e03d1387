package models

// Market keys published by the odds feed
const (
	MarketH2H       = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"
	MarketOutrights = "outrights"
)

// OddsEvent is one event from the odds feed with every bookmaker's markets
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"` // kept raw; unparsable values degrade the join key
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker holds the markets quoted by a single sportsbook
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

// Market is one market type quoted by a bookmaker
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is a single priced side of a market
type Outcome struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price"`           // American odds
	Point       *float64 `json:"point,omitempty"` // spread or total line
}
