package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sportstracker/internal/models"

	"github.com/rs/zerolog/log"
)

// ScoreboardLimit caps the events requested per scoreboard call
const ScoreboardLimit = 200

// ESPNTTLs sets how long each kind of ESPN response is cached
type ESPNTTLs struct {
	Schedule  time.Duration
	Teams     time.Duration
	News      time.Duration
	Standings time.Duration
}

// ESPNClient reads the ESPN site API: scoreboards, teams, news, standings
type ESPNClient struct {
	t    *transport
	ttls ESPNTTLs
}

// NewESPNClient creates a schedule feed client
func NewESPNClient(baseURL string, ttls ESPNTTLs, opts Options) *ESPNClient {
	return &ESPNClient{
		t:    newTransport("espn", strings.TrimRight(baseURL, "/"), opts),
		ttls: ttls,
	}
}

// FetchScoreboard fetches the events of a league between start and end, by
// calendar date, inclusive
func (c *ESPNClient) FetchScoreboard(ctx context.Context, sport, league string, start, end time.Time) ([]models.ScheduleEvent, error) {
	params := url.Values{}
	params.Set("dates", start.Format("20060102")+"-"+end.Format("20060102"))
	params.Set("limit", strconv.Itoa(ScoreboardLimit))

	body, err := c.t.get(ctx, "scoreboard", fmt.Sprintf("%s/%s/scoreboard", sport, league), params, c.ttls.Schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scoreboard: %w", err)
	}

	var resp models.ScoreboardResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse scoreboard response: %w", err)
	}

	events := make([]models.ScheduleEvent, 0, len(resp.Events))
	for i := range resp.Events {
		events = append(events, resp.Events[i].ToScheduleEvent())
	}

	log.Debug().
		Str("sport", sport).
		Str("league", league).
		Int("count", len(events)).
		Msg("Scoreboard fetched")

	return events, nil
}

// FetchTeams fetches the teams of a league
func (c *ESPNClient) FetchTeams(ctx context.Context, sport, league string) ([]models.TeamRef, error) {
	body, err := c.t.get(ctx, "teams", fmt.Sprintf("%s/%s/teams", sport, league), nil, c.ttls.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	var resp models.TeamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse teams response: %w", err)
	}

	return resp.Teams(), nil
}

// ResolveTeamID finds the ESPN id of team. A team matches when its joined
// names contain the target or are contained in it, case-insensitively.
// ok is false when no team matches.
func (c *ESPNClient) ResolveTeamID(ctx context.Context, sport, league, team string) (string, bool, error) {
	target := strings.ToLower(strings.TrimSpace(team))
	if target == "" {
		return "", false, nil
	}

	teams, err := c.FetchTeams(ctx, sport, league)
	if err != nil {
		return "", false, err
	}

	id, ok := MatchTeamID(teams, target)
	return id, ok, nil
}

// MatchTeamID returns the id of the first team whose joined names match target
func MatchTeamID(teams []models.TeamRef, target string) (string, bool) {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return "", false
	}

	for _, t := range teams {
		joined := strings.ToLower(strings.TrimSpace(strings.Join([]string{
			t.DisplayName, t.Name, t.ShortDisplayName, t.Abbreviation,
		}, " ")))
		if joined == "" {
			continue
		}
		if strings.Contains(joined, target) || strings.Contains(target, joined) {
			return t.ID, true
		}
	}
	return "", false
}

// FetchNews fetches up to limit articles: the team's when teamID is set,
// otherwise the league's
func (c *ESPNClient) FetchNews(ctx context.Context, sport, league, teamID string, limit int) ([]models.NewsItem, error) {
	path := fmt.Sprintf("%s/%s/news", sport, league)
	if teamID != "" {
		path = fmt.Sprintf("%s/%s/teams/%s/news", sport, league, url.PathEscape(teamID))
	}

	body, err := c.t.get(ctx, "news", path, nil, c.ttls.News)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	var resp models.NewsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	articles := resp.Articles
	if limit >= 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	items := make([]models.NewsItem, 0, len(articles))
	for i := range articles {
		items = append(items, articles[i].ToNewsItem())
	}
	return items, nil
}

// FetchStandings fetches the standings tables of a league
func (c *ESPNClient) FetchStandings(ctx context.Context, sport, league string) (*models.StandingsResponse, error) {
	body, err := c.t.get(ctx, "standings", fmt.Sprintf("%s/%s/standings", sport, league), nil, c.ttls.Standings)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}

	var resp models.StandingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse standings response: %w", err)
	}
	return &resp, nil
}
