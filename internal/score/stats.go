package score

import (
	"math"
	"time"
)

// Category names the five slices of a score used in breakdown statistics.
type Category string

const (
	CategoryCards   Category = "cards"
	CategoryTokens  Category = "tokens"
	CategoryPurple  Category = "purple"
	CategoryJourney Category = "journey"
	CategoryEvents  Category = "events"
)

var Categories = []Category{CategoryCards, CategoryTokens, CategoryPurple, CategoryJourney, CategoryEvents}

type CategoryInfo struct {
	Label string
	Icon  string
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryCards:   {Label: "Cards", Icon: "🏠"},
	CategoryTokens:  {Label: "Tokens", Icon: "🌰"},
	CategoryPurple:  {Label: "Purple", Icon: "✨"},
	CategoryJourney: {Label: "Journey", Icon: "🗺️"},
	CategoryEvents:  {Label: "Events", Icon: "🎪"},
}

func (c Category) Info() CategoryInfo { return categoryInfo[c] }

type CategoryTotals map[Category]int

func (t CategoryTotals) add(b Breakdown) {
	t[CategoryCards] += b.Cards
	t[CategoryTokens] += b.Tokens
	t[CategoryPurple] += b.Purple
	t[CategoryJourney] += b.Journey
	t[CategoryEvents] += b.EventPoints()
}

// Chip is one non-zero slice of a player's breakdown, for display.
type Chip struct {
	Category Category
	Points   int
}

// Chips lists the non-zero categories of b in display order. A nil
// breakdown has none.
func Chips(b *Breakdown) []Chip {
	if b == nil {
		return nil
	}
	t := newCategoryTotals()
	t.add(*b)
	var out []Chip
	for _, c := range Categories {
		if t[c] > 0 {
			out = append(out, Chip{Category: c, Points: t[c]})
		}
	}
	return out
}

func newCategoryTotals() CategoryTotals {
	t := CategoryTotals{}
	for _, c := range Categories {
		t[c] = 0
	}
	return t
}

type PlayerStats struct {
	Name         string
	Games        int
	Wins         int
	TotalScore   int
	HighestScore int
	Categories   CategoryTotals
}

// WinRate is the percentage of games won, 0 when no games were played.
func (p PlayerStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}

func (p PlayerStats) AverageScore() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.TotalScore) / float64(p.Games)
}

type Stats struct {
	TotalGames         int
	HighestScore       int
	HighestScorePlayer string
	HighestScoreDate   *time.Time

	// Players is ordered by first appearance across the game list.
	Players []PlayerStats

	Categories CategoryTotals
	// Percentages holds each category's share of TotalPoints, rounded to
	// one decimal. Empty when TotalPoints is zero.
	Percentages map[Category]float64
	TotalPoints int
}

func (s Stats) Empty() bool { return s.TotalGames == 0 }

func (s Stats) Player(name string) (PlayerStats, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return PlayerStats{}, false
}

// Summarize aggregates statistics over saved games. Games must already be
// migrated. A win is being listed first in a game. Players without a
// breakdown still count toward games, wins and scores but not toward
// category totals or TotalPoints.
func Summarize(games []Game) Stats {
	s := Stats{
		TotalGames:  len(games),
		Categories:  newCategoryTotals(),
		Percentages: map[Category]float64{},
	}
	if len(games) == 0 {
		return s
	}

	index := map[string]int{}
	for _, g := range games {
		for pos, p := range g.Players {
			i, ok := index[p.Name]
			if !ok {
				i = len(s.Players)
				index[p.Name] = i
				s.Players = append(s.Players, PlayerStats{Name: p.Name, Categories: newCategoryTotals()})
			}
			ps := &s.Players[i]
			ps.Games++
			ps.TotalScore += p.TotalScore
			if pos == 0 {
				ps.Wins++
			}
			if p.TotalScore > ps.HighestScore {
				ps.HighestScore = p.TotalScore
			}

			if p.TotalScore > s.HighestScore {
				s.HighestScore = p.TotalScore
				s.HighestScorePlayer = p.Name
				d := g.Date
				s.HighestScoreDate = &d
			}

			if p.Breakdown != nil {
				ps.Categories.add(*p.Breakdown)
				s.Categories.add(*p.Breakdown)
				s.TotalPoints += p.TotalScore
			}
		}
	}

	if s.TotalPoints > 0 {
		for _, c := range Categories {
			pct := float64(s.Categories[c]) / float64(s.TotalPoints) * 100
			s.Percentages[c] = math.Round(pct*10) / 10
		}
	}
	return s
}
