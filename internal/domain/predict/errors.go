package predict

import "errors"

var (
	// ErrTeamNotFound is returned when a matchup names a team missing
	// from the rankings.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidLocation is returned for an unrecognized game location.
	ErrInvalidLocation = errors.New("invalid location")
)
