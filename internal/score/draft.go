package score

import (
	"strings"
	"time"
)

// Draft is the in-progress game being scored: the seated players and any
// notes. It replaces shared session state; callers own and pass it around.
type Draft struct {
	Players []PlayerInput
	Notes   string
}

// NewDraft seats the named players with empty score sheets. Blank names are
// ignored and at least two must remain.
func NewDraft(names []string) (*Draft, error) {
	d := &Draft{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		d.Players = append(d.Players, PlayerInput{Name: n, Season: DefaultSeason})
	}
	if len(d.Players) < 2 {
		return nil, ErrNeedNames
	}
	return d, nil
}

// Fill puts in into the seat of the player with the same name (ignoring
// case), or seats a new player when nobody matches.
func (d *Draft) Fill(in PlayerInput) {
	for i := range d.Players {
		if strings.EqualFold(d.Players[i].Name, strings.TrimSpace(in.Name)) {
			in.Name = d.Players[i].Name
			d.Players[i] = in
			return
		}
	}
	d.Players = append(d.Players, in)
}

// Totals returns each player's live total in seat order.
func (d *Draft) Totals() []int {
	out := make([]int, len(d.Players))
	for i, p := range d.Players {
		out[i] = p.Total()
	}
	return out
}

// Reset clears every score sheet and the notes but keeps the players seated.
func (d *Draft) Reset() {
	for i := range d.Players {
		d.Players[i] = PlayerInput{Name: d.Players[i].Name, Season: DefaultSeason}
	}
	d.Notes = ""
}

func (d *Draft) Finalize(now time.Time) (Game, error) {
	return FinalizeGame(d.Players, d.Notes, now)
}
