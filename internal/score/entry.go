package score

import (
	"sort"
	"strings"
	"time"
)

const unnamedEvent = "Unnamed Event"

// JourneyInput mirrors the journey section of a score sheet: three one-off
// milestones and a repeatable 2-point space.
type JourneyInput struct {
	Three       bool
	Four        bool
	Five        bool
	RepeatCount string
}

func (j JourneyInput) Points() int {
	pts := 0
	if j.Three {
		pts += JourneyMilestones[0]
	}
	if j.Four {
		pts += JourneyMilestones[1]
	}
	if j.Five {
		pts += JourneyMilestones[2]
	}
	return pts + ParseCount(j.RepeatCount)*JourneyRepeatPoints
}

type SpecialEventInput struct {
	Name   string
	Points string
}

// PlayerInput holds the raw, still-editable values for one player. Totals
// are always derived from these fields, never stored alongside them.
type PlayerInput struct {
	Name          string
	Season        Season
	Cards         string
	Tokens        string
	Purple        string
	Journey       JourneyInput
	BasicEvents   string
	SpecialEvents []SpecialEventInput
}

// Breakdown converts the inputs to counters. Special event rows without a
// name or points are dropped.
func (in PlayerInput) Breakdown() Breakdown {
	basic := ParseCount(in.BasicEvents)
	if basic > MaxBasicEvents {
		basic = MaxBasicEvents
	}
	b := Breakdown{
		Cards:         ParseCount(in.Cards),
		Tokens:        ParseCount(in.Tokens),
		Purple:        ParseCount(in.Purple),
		Journey:       in.Journey.Points(),
		BasicEvents:   basic,
		SpecialEvents: []SpecialEvent{},
	}
	for _, e := range in.SpecialEvents {
		name := strings.TrimSpace(e.Name)
		pts := ParseCount(e.Points)
		if name == "" && pts <= 0 {
			continue
		}
		if name == "" {
			name = unnamedEvent
		}
		b.SpecialEvents = append(b.SpecialEvents, SpecialEvent{Name: name, Points: pts})
	}
	return b
}

func (in PlayerInput) Total() int {
	return in.Breakdown().Total()
}

// Result finalizes the input. ok is false when the player has no name.
func (in PlayerInput) Result() (PlayerResult, bool) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return PlayerResult{}, false
	}
	season := in.Season
	if !season.IsValid() {
		season = DefaultSeason
	}
	b := in.Breakdown()
	return PlayerResult{
		Name:       name,
		Season:     season,
		Breakdown:  &b,
		TotalScore: b.Total(),
	}, true
}

// ParseCount reads a leading integer the way a lenient form field would:
// surrounding text is ignored, anything unreadable is zero and negative
// values floor at zero.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1_000_000_000 {
			break
		}
	}
	if digits == 0 || neg {
		return 0
	}
	return n
}

// FinalizeGame builds a new game from the entered players. Players without
// a name are skipped. The result is sorted by total, highest first, with
// ties kept in entry order.
func FinalizeGame(inputs []PlayerInput, notes string, now time.Time) (Game, error) {
	players := make([]PlayerResult, 0, len(inputs))
	for _, in := range inputs {
		if p, ok := in.Result(); ok {
			players = append(players, p)
		}
	}
	if len(players) < 2 {
		return Game{}, ErrTooFewPlayers
	}
	hasScores := false
	for _, p := range players {
		if p.TotalScore > 0 {
			hasScores = true
			break
		}
	}
	if !hasScores {
		return Game{}, ErrNoScores
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].TotalScore > players[j].TotalScore
	})

	g := Game{
		ID:      now.UnixMilli(),
		Date:    now.UTC(),
		Version: CurrentVersion,
		Players: players,
	}
	if n := strings.TrimSpace(notes); n != "" {
		g.Notes = &n
	}
	return g, nil
}
