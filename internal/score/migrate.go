package score

// Migrate upgrades one stored game to CurrentVersion. Games already at the
// current version are returned as is, so applying it twice is the same as
// applying it once. The bool reports whether the game was rewritten.
//
// A player saved with only a bare score keeps it entirely as card points.
// A player without a season gets DefaultSeason.
func Migrate(g Game) (Game, bool) {
	if g.Version == CurrentVersion {
		return g, false
	}

	players := make([]PlayerResult, len(g.Players))
	for i, p := range g.Players {
		switch {
		case p.LegacyScore != nil && p.Breakdown == nil:
			season := p.Season
			if season == "" {
				season = DefaultSeason
			}
			players[i] = PlayerResult{
				Name:   p.Name,
				Season: season,
				Breakdown: &Breakdown{
					Cards:         *p.LegacyScore,
					SpecialEvents: []SpecialEvent{},
				},
				TotalScore: *p.LegacyScore,
			}
		default:
			if p.Season == "" {
				p.Season = DefaultSeason
			}
			players[i] = p
		}
	}

	g.Players = players
	g.Version = CurrentVersion
	return g, true
}

// MigrateAll applies Migrate to every game. changed is true when at least
// one game needed rewriting and the collection should be saved back.
func MigrateAll(games []Game) ([]Game, bool) {
	out := make([]Game, len(games))
	changed := false
	for i, g := range games {
		m, c := Migrate(g)
		out[i] = m
		changed = changed || c
	}
	return out, changed
}
