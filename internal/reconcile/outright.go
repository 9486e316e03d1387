package reconcile

import (
	"strings"

	"sportstracker/internal/models"
)

var (
	playoffTerms      = []string{"playoff", "make playoffs"}
	championshipTerms = []string{"champion", "win", "title"}
)

// ReduceOutrights finds the first playoff and the first championship price
// quoted for team across a futures feed.
//
// An outcome belongs to the team when either normalized name contains the
// other. It is a playoff quote when its description mentions the playoffs,
// and a championship quote when the description mentions a title or the
// market is the generic outrights market. Both can apply to one outcome.
// Zero and missing prices are skipped.
//
// The result is either OutrightOK or OutrightNoMarket; the configuration and
// transport statuses are decided by the caller.
func ReduceOutrights(events []models.OddsEvent, team string) models.OutrightSummary {
	target := Normalize(team)
	if target == "" {
		return models.OutrightSummary{Status: models.OutrightNoMarket}
	}

	var playoff, title *float64

	for _, ev := range events {
		for _, book := range ev.Bookmakers {
			for _, market := range book.Markets {
				for _, o := range market.Outcomes {
					if o.Price == nil || *o.Price == 0 {
						continue
					}

					name := Normalize(o.Name)
					if name == "" || !(strings.Contains(name, target) || strings.Contains(target, name)) {
						continue
					}

					desc := strings.ToLower(o.Description)
					if playoff == nil && containsAny(desc, playoffTerms) {
						playoff = o.Price
					}
					if title == nil && (containsAny(desc, championshipTerms) || market.Key == models.MarketOutrights) {
						title = o.Price
					}
				}
			}
		}
	}

	if playoff == nil && title == nil {
		return models.OutrightSummary{Status: models.OutrightNoMarket}
	}

	summary := models.OutrightSummary{Status: models.OutrightOK}
	if playoff != nil {
		summary.Playoff = signed(*playoff)
	}
	if title != nil {
		summary.Championship = signed(*title)
	}
	return summary
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
