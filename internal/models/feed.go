package models

import "strings"

// TeamsResponse is the envelope of the ESPN teams endpoint
type TeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team TeamRef `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// Teams flattens the first sport/league of the response, which is the only
// one ESPN returns for a league-scoped request
func (r *TeamsResponse) Teams() []TeamRef {
	if len(r.Sports) == 0 || len(r.Sports[0].Leagues) == 0 {
		return nil
	}

	var teams []TeamRef
	for _, item := range r.Sports[0].Leagues[0].Teams {
		teams = append(teams, item.Team)
	}
	return teams
}

// NewsResponse is the envelope of the ESPN news endpoints
type NewsResponse struct {
	Articles []ArticleInput `json:"articles"`
}

// ArticleInput is a raw news article
type ArticleInput struct {
	Headline  string `json:"headline"`
	Published string `json:"published"`
	Source    string `json:"source"`
	Links     struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
}

// ToNewsItem converts ArticleInput (from API) to a NewsItem with display defaults
func (a *ArticleInput) ToNewsItem() NewsItem {
	item := NewsItem{
		Headline: a.Headline,
		Source:   a.Source,
		URL:      a.Links.Web.Href,
	}
	if item.Headline == "" {
		item.Headline = "Untitled"
	}
	if item.Source == "" {
		item.Source = "ESPN"
	}
	item.Published = a.Published
	if len(item.Published) > 10 {
		item.Published = item.Published[:10]
	}
	return item
}

// StandingsResponse is the envelope of the ESPN standings endpoint
type StandingsResponse struct {
	Children []struct {
		Name      string `json:"name"`
		Standings struct {
			Entries []StandingEntry `json:"entries"`
		} `json:"standings"`
	} `json:"children"`
}

// StandingEntry is one row of a standings table
type StandingEntry struct {
	Team  TeamRef `json:"team"`
	Stats []struct {
		Name         string `json:"name"`
		DisplayValue string `json:"displayValue"`
	} `json:"stats"`
}

// Stat returns the display value of the first stat whose lower-cased name is
// one of names, or "-"
func (e *StandingEntry) Stat(names ...string) string {
	for _, s := range e.Stats {
		for _, n := range names {
			if strings.EqualFold(s.Name, n) {
				return s.DisplayValue
			}
		}
	}
	return "-"
}

// FindConstructor returns the standing of the first entry whose display or
// short display name contains team, case-insensitively
func (r *StandingsResponse) FindConstructor(team string) *ConstructorStanding {
	target := strings.ToLower(strings.TrimSpace(team))
	if target == "" {
		return nil
	}

	for _, group := range r.Children {
		for i := range group.Standings.Entries {
			e := &group.Standings.Entries[i]
			names := strings.ToLower(e.Team.DisplayName + " " + e.Team.ShortDisplayName)
			if !strings.Contains(names, target) {
				continue
			}

			name := e.Team.DisplayName
			if name == "" {
				name = team
			}
			return &ConstructorStanding{
				Team:   name,
				Points: e.Stat("points"),
				Rank:   e.Stat("rank", "position"),
			}
		}
	}
	return nil
}
