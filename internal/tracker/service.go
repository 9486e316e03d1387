package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportstracker/internal/client"
	"sportstracker/internal/config"
	"sportstracker/internal/metrics"
	"sportstracker/internal/models"
	"sportstracker/internal/reconcile"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ScheduleFeed is the schedule, news and standings collaborator
type ScheduleFeed interface {
	FetchScoreboard(ctx context.Context, sport, league string, start, end time.Time) ([]models.ScheduleEvent, error)
	ResolveTeamID(ctx context.Context, sport, league, team string) (string, bool, error)
	FetchNews(ctx context.Context, sport, league, teamID string, limit int) ([]models.NewsItem, error)
	FetchStandings(ctx context.Context, sport, league string) (*models.StandingsResponse, error)
}

// OddsFeed is the betting-odds collaborator
type OddsFeed interface {
	HasAPIKey() bool
	FetchEventOdds(ctx context.Context, sportKey string) ([]models.OddsEvent, error)
	FetchOutrights(ctx context.Context, sportKey string) ([]models.OddsEvent, error)
}

// Options tunes board building
type Options struct {
	PastDays    int
	FutureDays  int
	NewsLimit   int
	Location    *time.Location
	Policy      reconcile.MatchPolicy
	Concurrency int
	Now         func() time.Time
}

// Service builds tracker boards from the two feeds
type Service struct {
	schedule ScheduleFeed
	odds     OddsFeed
	trackers []config.Tracker
	opts     Options
	store    *Store
}

// NewService creates a board service over the given trackers
func NewService(schedule ScheduleFeed, odds OddsFeed, trackers []config.Tracker, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Policy == nil {
		opts.Policy = reconcile.SubstringMatch
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		schedule: schedule,
		odds:     odds,
		trackers: trackers,
		opts:     opts,
		store:    NewStore(),
	}
}

// Store returns the board store
func (s *Service) Store() *Store {
	return s.store
}

// Trackers returns the configured trackers in display order
func (s *Service) Trackers() []config.Tracker {
	return s.trackers
}

// Tracker looks up a tracker by key
func (s *Service) Tracker(key string) (config.Tracker, bool) {
	for _, t := range s.trackers {
		if t.Key == key {
			return t, true
		}
	}
	return config.Tracker{}, false
}

// Board returns the stored board of a tracker, building and storing it when
// no refresh has produced one yet. ok is false for an unknown key.
func (s *Service) Board(ctx context.Context, key string) (Board, bool, error) {
	t, ok := s.Tracker(key)
	if !ok {
		return Board{}, false, nil
	}

	if b, ok := s.store.Get(key); ok {
		return b, true, nil
	}

	b, err := s.Build(ctx, t)
	if err != nil {
		return Board{}, true, err
	}
	b.CycleID = uuid.NewString()
	s.store.Put(b)
	return b, true, nil
}

// RefreshAll builds every board concurrently under one cycle id and swaps
// the set into the store. Nothing is stored when the context ends first.
func (s *Service) RefreshAll(ctx context.Context) error {
	start := time.Now()
	cycleID := uuid.NewString()

	log.Info().
		Str("cycle_id", cycleID).
		Int("trackers", len(s.trackers)).
		Msg("Refreshing tracker boards")

	boards := make([]Board, len(s.trackers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, t := range s.trackers {
		i, t := i, t
		g.Go(func() error {
			b, err := s.Build(gctx, t)
			if err != nil {
				return fmt.Errorf("tracker %s: %w", t.Key, err)
			}
			b.CycleID = cycleID
			boards[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordRefresh("error", time.Since(start).Seconds())
		return fmt.Errorf("refresh cycle %s aborted: %w", cycleID, err)
	}

	s.store.ReplaceAll(cycleID, boards)
	metrics.RecordRefresh("success", time.Since(start).Seconds())

	log.Info().
		Str("cycle_id", cycleID).
		Dur("duration", time.Since(start)).
		Msg("Tracker boards refreshed")

	return nil
}

// Build assembles the board of one tracker. Feed failures degrade to empty
// sections; only a finished context is returned as an error.
func (s *Service) Build(ctx context.Context, t config.Tracker) (Board, error) {
	now := s.opts.Now()
	board := Board{
		Key:         t.Key,
		Label:       t.Label,
		Sport:       t.Sport,
		League:      t.League,
		GeneratedAt: now,
		News:        []models.NewsItem{},
	}

	events := s.scheduleEvents(ctx, t, now)
	if err := ctx.Err(); err != nil {
		return Board{}, err
	}

	var index reconcile.OddsIndex
	switch {
	case len(events) == 0:
		board.Notice = NoticeNoEvents
	case !t.HasOdds():
	case !s.odds.HasAPIKey():
		board.Notice = NoticeMissingAPIKey
	default:
		odds, err := s.odds.FetchEventOdds(ctx, t.OddsSportKey)
		if err != nil {
			s.warn(t, "event_odds", err)
			board.Notice = NoticeOddsFeedDown
		}
		index = reconcile.BuildIndex(odds)
	}

	board.Rows = reconcile.Join(events, index, s.opts.Location)
	board.OddsAttached = board.RowsWithOdds() > 0

	board.News = s.news(ctx, t)
	board.Outright = s.Outright(ctx, t)

	if t.ConstructorContext {
		board.Constructor = s.constructor(ctx, t)
	}

	if err := ctx.Err(); err != nil {
		return Board{}, err
	}

	metrics.RecordBoard(t.Key, len(board.Rows), board.RowsWithOdds())
	log.Debug().
		Str("tracker", t.Key).
		Int("rows", len(board.Rows)).
		Int("rows_with_odds", board.RowsWithOdds()).
		Int("news", len(board.News)).
		Str("outright", board.Outright.Status).
		Msg("Board built")

	return board, nil
}

// Outright summarises the futures markets of a tracker's team
func (s *Service) Outright(ctx context.Context, t config.Tracker) models.OutrightSummary {
	if !t.HasTeam() || !t.HasOdds() {
		return models.OutrightSummary{Status: models.OutrightNotApplicable}
	}

	events, err := s.odds.FetchOutrights(ctx, t.OddsSportKey)
	switch {
	case errors.Is(err, client.ErrMissingAPIKey):
		return models.OutrightSummary{Status: models.OutrightMissingAPIKey}
	case err != nil:
		s.warn(t, "outrights", err)
		return models.OutrightSummary{Status: models.OutrightUnavailable}
	}

	return reconcile.ReduceOutrights(events, t.TeamName)
}

func (s *Service) scheduleEvents(ctx context.Context, t config.Tracker, now time.Time) []models.ScheduleEvent {
	start := now.AddDate(0, 0, -s.opts.PastDays)
	end := now.AddDate(0, 0, s.opts.FutureDays)

	events, err := s.schedule.FetchScoreboard(ctx, t.Sport, t.League, start.UTC(), end.UTC())
	if err != nil {
		s.warn(t, "scoreboard", err)
		return nil
	}

	var keywords []string
	if t.Category != "" {
		kw, ok := reconcile.CategoryKeywords(t.Category)
		if !ok {
			log.Warn().Str("tracker", t.Key).Str("category", t.Category).Msg("Unknown category, not filtering")
		}
		keywords = kw
	}

	return reconcile.Filter(events, t.TeamName, keywords, s.opts.Policy)
}

func (s *Service) news(ctx context.Context, t config.Tracker) []models.NewsItem {
	var teamID string
	if t.HasTeam() {
		id, ok, err := s.schedule.ResolveTeamID(ctx, t.Sport, t.League, t.TeamName)
		if err != nil {
			s.warn(t, "teams", err)
		} else if ok {
			teamID = id
		}
	}

	items, err := s.schedule.FetchNews(ctx, t.Sport, t.League, teamID, s.opts.NewsLimit)
	if err != nil {
		s.warn(t, "news", err)
		return []models.NewsItem{}
	}
	return items
}

func (s *Service) constructor(ctx context.Context, t config.Tracker) *models.ConstructorStanding {
	standings, err := s.schedule.FetchStandings(ctx, t.Sport, t.League)
	if err != nil {
		s.warn(t, "standings", err)
		return nil
	}

	team := t.TeamName
	if team == "" {
		team = t.Label
	}
	return standings.FindConstructor(team)
}

func (s *Service) warn(t config.Tracker, feed string, err error) {
	metrics.RecordError("tracker", feed)
	log.Warn().
		Err(err).
		Str("tracker", t.Key).
		Str("feed", feed).
		Msg("Feed call failed, continuing with partial board")
}
