package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sportstracker/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	// ErrMissingAPIKey is returned when no odds-feed credential is configured
	ErrMissingAPIKey = errors.New("odds api key is not configured")

	// ErrUnavailable is returned when the odds feed fails or answers with
	// something other than a list of events
	ErrUnavailable = errors.New("odds feed unavailable")
)

// OddsClient reads The Odds API v4
type OddsClient struct {
	t       *transport
	apiKey  string
	regions string
	ttl     time.Duration
}

// NewOddsClient creates an odds feed client. An empty apiKey is allowed;
// every fetch then fails with ErrMissingAPIKey.
func NewOddsClient(baseURL, apiKey, regions string, ttl time.Duration, opts Options) *OddsClient {
	if regions == "" {
		regions = "us"
	}
	return &OddsClient{
		t:       newTransport("odds", strings.TrimRight(baseURL, "/"), opts),
		apiKey:  strings.TrimSpace(apiKey),
		regions: regions,
		ttl:     ttl,
	}
}

// HasAPIKey reports whether a credential is configured
func (c *OddsClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// FetchEventOdds fetches per-game moneyline, spread and total markets
func (c *OddsClient) FetchEventOdds(ctx context.Context, sportKey string) ([]models.OddsEvent, error) {
	markets := strings.Join([]string{models.MarketH2H, models.MarketSpreads, models.MarketTotals}, ",")
	return c.fetchOdds(ctx, "event_odds", sportKey, markets)
}

// FetchOutrights fetches futures markets
func (c *OddsClient) FetchOutrights(ctx context.Context, sportKey string) ([]models.OddsEvent, error) {
	return c.fetchOdds(ctx, "outrights", sportKey, models.MarketOutrights)
}

func (c *OddsClient) fetchOdds(ctx context.Context, endpoint, sportKey, markets string) ([]models.OddsEvent, error) {
	if !c.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", c.regions)
	params.Set("markets", markets)
	params.Set("oddsFormat", "american")

	body, err := c.t.get(ctx, endpoint, fmt.Sprintf("sports/%s/odds", url.PathEscape(sportKey)), params, c.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	events, err := decodeEvents(body)
	if err != nil {
		log.Warn().
			Err(err).
			Str("sport_key", sportKey).
			Str("endpoint", endpoint).
			Msg("Odds feed returned an unexpected payload")
		return nil, err
	}

	log.Debug().
		Str("sport_key", sportKey).
		Str("endpoint", endpoint).
		Int("count", len(events)).
		Msg("Odds fetched")

	return events, nil
}

// decodeEvents accepts only a JSON array; error objects and anything else
// map to ErrUnavailable
func decodeEvents(body []byte) ([]models.OddsEvent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: payload is not a list", ErrUnavailable)
	}

	events := []models.OddsEvent{}
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return events, nil
}
