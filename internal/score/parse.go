package score

import (
	"fmt"
	"strings"
)

// ParsePlayerSpec parses a compact score sheet of the form
//
//	Name,season=spring,cards=30,tokens=4,purple=6,journey=3+5,j2=1,events=1,special=Festival:2
//
// Every key is optional and special may repeat. Numeric values are kept
// raw; they are read leniently when totals are computed.
func ParsePlayerSpec(spec string) (PlayerInput, error) {
	parts := strings.Split(spec, ",")
	in := PlayerInput{
		Name:   strings.TrimSpace(parts[0]),
		Season: DefaultSeason,
	}
	if in.Name == "" {
		return PlayerInput{}, fmt.Errorf("player spec %q: name is required", spec)
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return PlayerInput{}, fmt.Errorf("player spec %q: expected key=value, got %q", spec, part)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "season":
			s, err := ParseSeason(value)
			if err != nil {
				return PlayerInput{}, err
			}
			in.Season = s
		case "cards":
			in.Cards = value
		case "tokens":
			in.Tokens = value
		case "purple":
			in.Purple = value
		case "journey":
			for _, m := range strings.Split(value, "+") {
				switch strings.TrimSpace(m) {
				case "3":
					in.Journey.Three = true
				case "4":
					in.Journey.Four = true
				case "5":
					in.Journey.Five = true
				case "":
				default:
					return PlayerInput{}, fmt.Errorf("player spec %q: journey milestone must be 3, 4 or 5, got %q", spec, m)
				}
			}
		case "j2", "journey2":
			in.Journey.RepeatCount = value
		case "events":
			in.BasicEvents = value
		case "special":
			name, pts, _ := strings.Cut(value, ":")
			in.SpecialEvents = append(in.SpecialEvents, SpecialEventInput{Name: name, Points: pts})
		default:
			return PlayerInput{}, fmt.Errorf("player spec %q: unknown key %q", spec, key)
		}
	}
	return in, nil
}
