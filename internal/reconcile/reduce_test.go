package reconcile

import (
	"testing"

	"sportstracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 { return &v }

func outcome(name string, p *float64, point *float64) models.Outcome {
	return models.Outcome{Name: name, Price: p, Point: point}
}

func book(markets ...models.Market) models.Bookmaker {
	return models.Bookmaker{Markets: markets}
}

func lakersNuggets(books ...models.Bookmaker) models.OddsEvent {
	return models.OddsEvent{
		HomeTeam:     "Los Angeles Lakers",
		AwayTeam:     "Denver Nuggets",
		CommenceTime: "2024-01-10T02:00:00Z",
		Bookmakers:   books,
	}
}

func TestReduce_Moneyline(t *testing.T) {
	ev := lakersNuggets(book(models.Market{
		Key: models.MarketH2H,
		Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", price(-150), nil),
			outcome("Denver Nuggets", price(130), nil),
		},
	}))

	summary := Reduce(ev)
	assert.Equal(t, "Denver Nuggets +130 / Los Angeles Lakers -150", summary.Moneyline)
	assert.Empty(t, summary.Spread)
	assert.Empty(t, summary.Total)
}

func TestReduce_MoneylineFirstSeenWins(t *testing.T) {
	ev := lakersNuggets(
		book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", price(-160), nil),
			outcome("Denver Nuggets", price(120), nil),
		}}),
		book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", price(-140), nil),
			outcome("Denver Nuggets", price(145), nil),
		}}),
	)

	assert.Equal(t, "Denver Nuggets +120 / Los Angeles Lakers -160", Reduce(ev).Moneyline,
		"First bookmaker in traversal order should win, not the best price")
}

func TestReduce_MoneylineOneSide(t *testing.T) {
	ev := lakersNuggets(book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
		outcome("Los Angeles Lakers", nil, nil),
		outcome("Denver Nuggets", price(150), nil),
	}}))
	assert.Equal(t, "Denver Nuggets +150", Reduce(ev).Moneyline)

	ev = lakersNuggets(book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
		outcome("Los Angeles Lakers", price(-110), nil),
	}}))
	assert.Equal(t, "Los Angeles Lakers -110", Reduce(ev).Moneyline)
}

func TestReduce_MoneylineSkipsMissingPriceThenTakesNext(t *testing.T) {
	ev := lakersNuggets(
		book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", nil, nil),
		}}),
		book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", price(-125), nil),
			outcome("Denver Nuggets", price(105), nil),
		}}),
	)
	assert.Equal(t, "Denver Nuggets +105 / Los Angeles Lakers -125", Reduce(ev).Moneyline)
}

func TestReduce_Spread(t *testing.T) {
	ev := lakersNuggets(
		book(models.Market{Key: models.MarketSpreads, Outcomes: []models.Outcome{
			outcome("Denver Nuggets", price(-110), price(-3.5)),
			outcome("Los Angeles Lakers", price(-110), price(3.5)),
		}}),
		book(models.Market{Key: models.MarketSpreads, Outcomes: []models.Outcome{
			outcome("Los Angeles Lakers", price(-105), price(4)),
		}}),
	)

	assert.Equal(t, "+3.5 (-110)", Reduce(ev).Spread, "Only the first home spread should be kept")
}

func TestReduce_SpreadWholeNumberAndMissingPoint(t *testing.T) {
	ev := lakersNuggets(book(models.Market{Key: models.MarketSpreads, Outcomes: []models.Outcome{
		outcome("Los Angeles Lakers", price(-110), nil),
		outcome("Los Angeles Lakers", price(-115), price(-3)),
	}}))

	assert.Equal(t, "-3 (-115)", Reduce(ev).Spread)
}

func TestReduce_TotalIgnoresUnder(t *testing.T) {
	ev := lakersNuggets(book(models.Market{Key: models.MarketTotals, Outcomes: []models.Outcome{
		outcome("Under", price(-105), price(221.5)),
		outcome("Over", price(-115), price(221.5)),
	}}))

	assert.Equal(t, "O/U 221.5 (-115)", Reduce(ev).Total)
}

func TestReduce_TotalCaseInsensitiveOver(t *testing.T) {
	ev := lakersNuggets(book(models.Market{Key: models.MarketTotals, Outcomes: []models.Outcome{
		outcome("OVER", price(100), price(220)),
	}}))

	assert.Equal(t, "O/U 220 (+100)", Reduce(ev).Total)
}

func TestReduce_NoUsableQuotes(t *testing.T) {
	ev := lakersNuggets(
		book(models.Market{Key: models.MarketH2H, Outcomes: []models.Outcome{outcome("Someone Else", price(100), nil)}}),
		book(models.Market{Key: models.MarketTotals, Outcomes: []models.Outcome{outcome("Under", price(-110), price(210))}}),
		book(models.Market{Key: "player_points"}),
	)

	summary := Reduce(ev)
	assert.True(t, summary.IsEmpty())
}

func TestFormatAmerican(t *testing.T) {
	assert.Equal(t, "+150", FormatAmerican(150))
	assert.Equal(t, "-110", FormatAmerican(-110))
	assert.Equal(t, "+0", FormatAmerican(0))
	assert.Equal(t, "+250000", FormatAmerican(250000))
}
