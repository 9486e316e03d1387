package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ScoreboardResponse is the envelope returned by the ESPN scoreboard endpoint
type ScoreboardResponse struct {
	Events []EventInput `json:"events"`
}

// EventInput is a raw scoreboard event as published by ESPN
type EventInput struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"` // ISO 8601, "Z" or offset suffix, seconds optional
	Name         string             `json:"name"`
	ShortName    string             `json:"shortName"`
	Status       StatusInput        `json:"status"`
	Competitions []CompetitionInput `json:"competitions"`
}

// CompetitionInput is one competition inside an event. Only the first is used.
type CompetitionInput struct {
	ID          string            `json:"id"`
	Status      StatusInput       `json:"status"`
	Competitors []CompetitorInput `json:"competitors"`
}

// CompetitorInput is one side of a competition
type CompetitorInput struct {
	HomeAway string     `json:"homeAway"`
	Score    FlexString `json:"score"`
	Team     TeamRef    `json:"team"`
	Athlete  TeamRef    `json:"athlete"` // individual sports publish athletes instead of teams
}

// TeamRef carries the names ESPN attaches to a team or athlete
type TeamRef struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	Name             string `json:"name"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
}

// StatusInput wraps the status description ESPN nests under "type"
type StatusInput struct {
	Type struct {
		Name        string `json:"name"`
		State       string `json:"state"`
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
	} `json:"type"`
}

// FlexString accepts a JSON string, number, or an object carrying
// "displayValue"/"value". Anything else decodes to "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '{':
		var obj struct {
			DisplayValue string   `json:"displayValue"`
			Value        *float64 `json:"value"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			*f = ""
			return nil
		}
		if obj.DisplayValue != "" {
			*f = FlexString(obj.DisplayValue)
		} else if obj.Value != nil {
			*f = FlexString(strconv.FormatFloat(*obj.Value, 'f', -1, 64))
		} else {
			*f = ""
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(n.String())
	}
	return nil
}

// Participant is one side of a ScheduleEvent
type Participant struct {
	Name     string
	HomeAway string // "home", "away" or "" when the feed omits the role
	Score    string // "" until the contest starts
}

// ScheduleEvent is the schedule-feed event after decoding. Immutable once built.
type ScheduleEvent struct {
	ID                string
	Date              string // raw instant as published; parsed lazily
	Name              string
	ShortName         string
	Participants      []Participant
	CompetitionStatus string
	EventStatus       string
}

// ToScheduleEvent converts EventInput (from API) to a ScheduleEvent
func (ei *EventInput) ToScheduleEvent() ScheduleEvent {
	ev := ScheduleEvent{
		ID:          ei.ID,
		Date:        ei.Date,
		Name:        ei.Name,
		ShortName:   ei.ShortName,
		EventStatus: ei.Status.Type.Description,
	}

	if len(ei.Competitions) == 0 {
		return ev
	}

	comp := ei.Competitions[0]
	ev.CompetitionStatus = comp.Status.Type.Description
	for _, c := range comp.Competitors {
		name := c.Team.DisplayName
		if name == "" {
			name = c.Athlete.DisplayName
		}
		ev.Participants = append(ev.Participants, Participant{
			Name:     name,
			HomeAway: strings.ToLower(c.HomeAway),
			Score:    string(c.Score),
		})
	}

	return ev
}

// Sides picks the away and home participants. The role label wins; without
// one, the first competitor is away and the second is home. ok is false when
// fewer than two participants are present.
func (e ScheduleEvent) Sides() (away, home Participant, ok bool) {
	if len(e.Participants) < 2 {
		return Participant{}, Participant{}, false
	}

	away, home = e.Participants[0], e.Participants[1]
	for _, p := range e.Participants {
		if p.HomeAway == "away" {
			away = p
			break
		}
	}
	for _, p := range e.Participants {
		if p.HomeAway == "home" {
			home = p
			break
		}
	}
	return away, home, true
}

// Status returns the competition-level status, falling back to the event-level one
func (e ScheduleEvent) Status() string {
	if e.CompetitionStatus != "" {
		return e.CompetitionStatus
	}
	return e.EventStatus
}
