package score

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CurrentVersion is the schema version stamped on every saved game.
	CurrentVersion = 3

	BasicEventPoints = 3
	MaxBasicEvents   = 4

	JourneyRepeatPoints = 2
)

// JourneyMilestones are the one-off journey spaces, in point value.
var JourneyMilestones = [3]int{3, 4, 5}

type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonAutumn Season = "Autumn"
)

// DefaultSeason is used for new players and for records saved without one.
const DefaultSeason = SeasonAutumn

var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

type SeasonInfo struct {
	Workers int
	Icon    string
}

var seasonInfo = map[Season]SeasonInfo{
	SeasonWinter: {Workers: 2, Icon: "❄️"},
	SeasonSpring: {Workers: 3, Icon: "🌸"},
	SeasonSummer: {Workers: 4, Icon: "☀️"},
	SeasonAutumn: {Workers: 6, Icon: "🍁"},
}

func (s Season) IsValid() bool {
	_, ok := seasonInfo[s]
	return ok
}

// Info returns the season's worker count and icon; unknown seasons report
// the default season's values.
func (s Season) Info() SeasonInfo {
	if info, ok := seasonInfo[s]; ok {
		return info
	}
	return seasonInfo[DefaultSeason]
}

func ParseSeason(input string) (Season, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return DefaultSeason, nil
	}
	for _, season := range Seasons {
		if strings.ToLower(string(season)) == s {
			return season, nil
		}
	}
	return "", fmt.Errorf("invalid season: %q", input)
}

type SpecialEvent struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type Breakdown struct {
	Cards         int            `json:"cards"`
	Tokens        int            `json:"tokens"`
	Purple        int            `json:"purple"`
	Journey       int            `json:"journey"`
	BasicEvents   int            `json:"basicEvents"`
	SpecialEvents []SpecialEvent `json:"specialEvents"`
}

// EventPoints is basic events at their fixed value plus all special events.
func (b Breakdown) EventPoints() int {
	pts := b.BasicEvents * BasicEventPoints
	for _, e := range b.SpecialEvents {
		pts += e.Points
	}
	return pts
}

func (b Breakdown) Total() int {
	return b.Cards + b.Tokens + b.Purple + b.Journey + b.EventPoints()
}

type PlayerResult struct {
	Name       string     `json:"name"`
	Season     Season     `json:"season,omitempty"`
	Breakdown  *Breakdown `json:"breakdown,omitempty"`
	TotalScore int        `json:"totalScore"`

	// LegacyScore is the bare score of records written before breakdowns existed.
	LegacyScore *int `json:"score,omitempty"`
}

type Game struct {
	ID      int64          `json:"id"`
	Date    time.Time      `json:"date"`
	Version int            `json:"version,omitempty"`
	Players []PlayerResult `json:"players"`
	Notes   *string        `json:"notes"`
}

// Winner is the first player of a saved game, or nil for an empty game.
func (g Game) Winner() *PlayerResult {
	if len(g.Players) == 0 {
		return nil
	}
	return &g.Players[0]
}
