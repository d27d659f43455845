package pantry

import "time"

// ExpiringSoonDays is the lookahead window, inclusive of both ends.
const ExpiringSoonDays = 7

type Status int

const (
	StatusNormal Status = iota
	StatusExpiringSoon
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusExpired:
		return "expired"
	case StatusExpiringSoon:
		return "expiring soon"
	default:
		return "normal"
	}
}

// Today is the calendar day of now in now's own location.
func Today(now time.Time) Date {
	return DateOf(now)
}

// IsExpired reports whether exp is strictly before today. Items without a
// date never expire.
func IsExpired(exp *Date, today Date) bool {
	if exp == nil {
		return false
	}
	return exp.Before(today)
}

// IsExpiringSoon reports whether exp falls within today..today+7.
func IsExpiringSoon(exp *Date, today Date) bool {
	if exp == nil {
		return false
	}
	return !exp.Before(today) && !exp.After(today.AddDays(ExpiringSoonDays))
}

func StatusOf(exp *Date, today Date) Status {
	switch {
	case IsExpired(exp, today):
		return StatusExpired
	case IsExpiringSoon(exp, today):
		return StatusExpiringSoon
	default:
		return StatusNormal
	}
}

func (it Item) Status(today Date) Status {
	return StatusOf(it.Expiration, today)
}
