package reconcile

import (
	"strings"

	"sportstracker/internal/models"
)

// quote is a (line, price) pair captured from one outcome
type quote struct {
	point float64
	price float64
}

// Reduce collapses every bookmaker's quotes for one odds event into a
// MarketSummary.
//
// Bookmakers and markets are walked in feed order and the first usable quote
// for each slot wins; later quotes are ignored even when better. Only the
// home side of the spread and the Over side of the total are kept.
func Reduce(ev models.OddsEvent) models.MarketSummary {
	var (
		homeML, awayML *float64
		spread, total  *quote
	)

	for _, book := range ev.Bookmakers {
		for _, market := range book.Markets {
			switch market.Key {
			case models.MarketH2H:
				for _, o := range market.Outcomes {
					if o.Price == nil {
						continue
					}
					if sameName(o.Name, ev.HomeTeam) {
						if homeML == nil {
							homeML = o.Price
						}
					} else if sameName(o.Name, ev.AwayTeam) {
						if awayML == nil {
							awayML = o.Price
						}
					}
				}

			case models.MarketSpreads:
				for _, o := range market.Outcomes {
					if spread != nil || o.Price == nil || o.Point == nil {
						continue
					}
					if sameName(o.Name, ev.HomeTeam) {
						spread = &quote{point: *o.Point, price: *o.Price}
					}
				}

			case models.MarketTotals:
				for _, o := range market.Outcomes {
					if total != nil || o.Price == nil || o.Point == nil {
						continue
					}
					if strings.HasPrefix(strings.ToLower(strings.TrimSpace(o.Name)), "over") {
						total = &quote{point: *o.Point, price: *o.Price}
					}
				}
			}
		}
	}

	var summary models.MarketSummary

	switch {
	case homeML != nil && awayML != nil:
		summary.Moneyline = ev.AwayTeam + " " + signed(*awayML) + " / " + ev.HomeTeam + " " + signed(*homeML)
	case homeML != nil:
		summary.Moneyline = ev.HomeTeam + " " + signed(*homeML)
	case awayML != nil:
		summary.Moneyline = ev.AwayTeam + " " + signed(*awayML)
	}

	if spread != nil {
		summary.Spread = signed(spread.point) + " (" + signed(spread.price) + ")"
	}

	if total != nil {
		summary.Total = "O/U " + number(total.point) + " (" + signed(total.price) + ")"
	}

	return summary
}
