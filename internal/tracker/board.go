package tracker

import (
	"sync"
	"time"

	"sportstracker/internal/models"
)

// Notices explaining why per-game odds are missing from a board
const (
	NoticeNoEvents      = "No events found in the current window."
	NoticeMissingAPIKey = "Set ODDS_API_KEY to enable per-game odds."
	NoticeOddsFeedDown  = "Per-game odds are unavailable right now."
)

// Board is everything shown for one tracker after a refresh
type Board struct {
	Key          string                      `json:"key"`
	Label        string                      `json:"label"`
	Sport        string                      `json:"sport"`
	League       string                      `json:"league"`
	CycleID      string                      `json:"cycle_id"`
	GeneratedAt  time.Time                   `json:"generated_at"`
	Rows         []models.DisplayRow         `json:"rows"`
	OddsAttached bool                        `json:"odds_attached"`
	Notice       string                      `json:"notice,omitempty"`
	News         []models.NewsItem           `json:"news"`
	Outright     models.OutrightSummary      `json:"outright"`
	Constructor  *models.ConstructorStanding `json:"constructor,omitempty"`
}

// RowsWithOdds counts rows that carry market data
func (b *Board) RowsWithOdds() int {
	n := 0
	for _, r := range b.Rows {
		if r.Odds != nil {
			n++
		}
	}
	return n
}

// Store holds the latest board per tracker. A refresh cycle replaces the
// whole set at once so readers never see boards from two cycles mixed.
type Store struct {
	mu      sync.RWMutex
	boards  map[string]Board
	cycleID string
	updated time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{boards: make(map[string]Board)}
}

// ReplaceAll swaps in the boards of a completed cycle
func (s *Store) ReplaceAll(cycleID string, boards []Board) {
	next := make(map[string]Board, len(boards))
	for _, b := range boards {
		next[b.Key] = b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards = next
	s.cycleID = cycleID
	s.updated = time.Now()
}

// Put stores a single board built outside a refresh cycle
func (s *Store) Put(b Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[b.Key] = b
}

// Get returns the latest board of a tracker
func (s *Store) Get(key string) (Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[key]
	return b, ok
}

// CycleID returns the id of the last completed refresh cycle
func (s *Store) CycleID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycleID
}

// Updated returns when the last cycle completed; zero before the first
func (s *Store) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}
