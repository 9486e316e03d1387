package reconcile

import (
	"fmt"
	"strings"

	"sportstracker/internal/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchPolicy decides whether a tracked team name refers to a participant.
// Both arguments are already normalized and non-empty.
type MatchPolicy func(target, participant string) bool

// SubstringMatch accepts either name being a substring of the other
// ("lakers" and "los angeles lakers" match both ways round).
func SubstringMatch(target, participant string) bool {
	return strings.Contains(participant, target) || strings.Contains(target, participant)
}

// FuzzyMatch accepts either name's characters appearing in order inside the
// other. It matches everything SubstringMatch does and tolerates dropped
// letters and words ("la lakers" matches "los angeles lakers").
func FuzzyMatch(target, participant string) bool {
	return fuzzy.MatchNormalizedFold(target, participant) || fuzzy.MatchNormalizedFold(participant, target)
}

// PolicyByName resolves a configured policy name
func PolicyByName(name string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "substring":
		return SubstringMatch, nil
	case "fuzzy":
		return FuzzyMatch, nil
	default:
		return nil, fmt.Errorf("unknown team match policy %q", name)
	}
}

// Category keyword lists
var (
	GrandSlamKeywords = []string{
		"australian open",
		"french open",
		"roland garros",
		"wimbledon",
		"us open",
	}

	categories = map[string][]string{
		"grand_slams": GrandSlamKeywords,
	}
)

// CategoryKeywords returns the keyword list of a named category; ok is false
// for an unknown name
func CategoryKeywords(category string) ([]string, bool) {
	kw, ok := categories[strings.ToLower(strings.TrimSpace(category))]
	return kw, ok
}

// FilterCategory keeps events whose name or short name contains any keyword,
// case-insensitively. A nil keyword list keeps everything.
func FilterCategory(events []models.ScheduleEvent, keywords []string) []models.ScheduleEvent {
	if keywords == nil {
		return events
	}

	var out []models.ScheduleEvent
	for _, e := range events {
		name := strings.ToLower(e.Name)
		short := strings.ToLower(e.ShortName)
		for _, k := range keywords {
			k = strings.ToLower(k)
			if strings.Contains(name, k) || strings.Contains(short, k) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// FilterTeam keeps events in which at least one participant matches team
// under policy. An empty team name keeps everything. A nil policy means
// SubstringMatch.
func FilterTeam(events []models.ScheduleEvent, team string, policy MatchPolicy) []models.ScheduleEvent {
	target := Normalize(team)
	if target == "" {
		return events
	}
	if policy == nil {
		policy = SubstringMatch
	}

	var out []models.ScheduleEvent
	for _, e := range events {
		for _, p := range e.Participants {
			name := Normalize(p.Name)
			if name != "" && policy(target, name) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Filter applies the category filter and then the team filter
func Filter(events []models.ScheduleEvent, team string, keywords []string, policy MatchPolicy) []models.ScheduleEvent {
	return FilterTeam(FilterCategory(events, keywords), team, policy)
}
