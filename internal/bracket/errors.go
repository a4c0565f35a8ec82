package bracket

import "errors"

var (
	// ErrInsufficientContenders indicates fewer than two candidates passed the filter.
	ErrInsufficientContenders = errors.New("bracket: not enough contenders")
	// ErrNoSuchMatchup indicates a round or matchup index outside the bracket.
	ErrNoSuchMatchup = errors.New("bracket: no such matchup")
	// ErrAlreadyDecided indicates a vote on a matchup that already has a winner.
	ErrAlreadyDecided = errors.New("bracket: matchup already decided")
	// ErrRoundInactive indicates a vote on a round that has not been activated.
	ErrRoundInactive = errors.New("bracket: round not active")
	// ErrInvalidSlot indicates a pick outside the pair or on an unresolved slot.
	ErrInvalidSlot = errors.New("bracket: invalid slot")
	// ErrStructure indicates a violated bracket invariant.
	ErrStructure = errors.New("bracket: structural violation")
)
