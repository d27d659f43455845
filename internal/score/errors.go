package score

import "errors"

var (
	ErrTooFewPlayers = errors.New("please have at least 2 players")
	ErrNoScores      = errors.New("please enter some scores")
	ErrNeedNames     = errors.New("please enter at least 2 player names")
)
