package bracket

import (
	"fmt"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// Outcome classifies what a successful vote did to the bracket.
type Outcome string

const (
	// OutcomeRecorded means the round still has undecided matchups.
	OutcomeRecorded Outcome = "vote_recorded"
	// OutcomeRoundComplete means the round finished and the next one is active.
	OutcomeRoundComplete Outcome = "round_complete"
	// OutcomeComplete means the final was decided.
	OutcomeComplete Outcome = "tournament_complete"
)

// VoteResult describes a recorded vote. Champion is set only for
// OutcomeComplete; NextRound only for OutcomeRoundComplete.
type VoteResult struct {
	Outcome   Outcome
	Round     int
	Matchup   int
	Winner    restaurant.Candidate
	NextRound int
	Champion  *restaurant.Candidate
}

// RecordVote decides matchup index of round number in favour of pair[pick].
// A rejected vote leaves the bracket unchanged.
func (b *Bracket) RecordVote(number, index, pick int) (VoteResult, error) {
	r, ok := b.Round(number)
	if !ok || index < 0 || index >= len(r.Matchups) {
		return VoteResult{}, fmt.Errorf("%w: round %d matchup %d", ErrNoSuchMatchup, number, index)
	}
	m := &r.Matchups[index]

	if m.Decided() {
		return VoteResult{}, ErrAlreadyDecided
	}
	if !r.Active {
		return VoteResult{}, fmt.Errorf("%w: round %d", ErrRoundInactive, number)
	}
	if pick < 0 || pick > 1 || m.Pair[pick] == nil {
		return VoteResult{}, fmt.Errorf("%w: pick %d", ErrInvalidSlot, pick)
	}

	m.Winner = &pick
	res := VoteResult{
		Outcome: OutcomeRecorded,
		Round:   number,
		Matchup: index,
		Winner:  *m.Pair[pick],
	}

	if !r.decided() {
		return res, nil
	}

	if number == b.TotalRounds() {
		res.Outcome = OutcomeComplete
		res.Champion = m.Pair[pick]
		return res, nil
	}

	if err := b.advance(number); err != nil {
		m.Winner = nil
		return VoteResult{}, err
	}
	if err := b.Activate(number + 1); err != nil {
		return VoteResult{}, fmt.Errorf("%w: %w", ErrStructure, err)
	}
	res.Outcome = OutcomeRoundComplete
	res.NextRound = number + 1
	return res, nil
}
