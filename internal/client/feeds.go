package client

import (
	"sportstracker/internal/cache"
	"sportstracker/internal/config"
)

// NewFeeds creates both feed clients from the application configuration.
// A nil cache disables response caching.
func NewFeeds(cfg *config.Config, c cache.Cache) (*ESPNClient, *OddsClient) {
	opts := Options{
		Timeout:    cfg.HTTPTimeout,
		MaxRetries: cfg.HTTPMaxRetries,
		RateLimit:  cfg.APIRateLimit,
		Burst:      cfg.APIBurstLimit,
		Cache:      c,
	}

	espn := NewESPNClient(cfg.ESPNBaseURL, ESPNTTLs{
		Schedule:  cfg.CacheTTLSchedule,
		Teams:     cfg.CacheTTLTeams,
		News:      cfg.CacheTTLNews,
		Standings: cfg.CacheTTLStandings,
	}, opts)

	odds := NewOddsClient(cfg.OddsBaseURL, cfg.OddsAPIKey, cfg.OddsRegions, cfg.CacheTTLOdds, opts)

	return espn, odds
}
