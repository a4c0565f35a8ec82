// Package bracket seeds and runs a single-elimination tournament over a list
// of restaurants.
//
// Seed filters and ranks candidates and truncates them to a power of two.
// Build lays out the rounds, Activate opens a round for voting, and
// RecordVote decides one matchup at a time. When the last matchup of a round
// is decided the winners are advanced into the next round and that round is
// activated in the same step; the result of RecordVote says which of the
// three outcomes happened.
//
// Topology: the winner of matchup i in round r fills slot i%2 of matchup i/2
// in round r+1.
//
// Errors:
//
//   - ErrInsufficientContenders: fewer than two candidates survive filtering.
//   - ErrNoSuchMatchup, ErrAlreadyDecided, ErrRoundInactive, ErrInvalidSlot:
//     rejected votes. The bracket is left unchanged.
//   - ErrStructure: a broken bracket invariant. Callers should treat it as a bug.
package bracket
