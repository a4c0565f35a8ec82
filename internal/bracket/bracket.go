package bracket

import (
	"fmt"
	"math/bits"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// Matchup pairs two slots. A nil slot is unresolved: its contender is not
// known until the feeding matchup in the previous round is decided.
type Matchup struct {
	Round  int                      `json:"round"`
	Index  int                      `json:"index"`
	Pair   [2]*restaurant.Candidate `json:"pair"`
	Winner *int                     `json:"winner"`
}

// Decided reports whether the matchup has a winner.
func (m *Matchup) Decided() bool { return m.Winner != nil }

// WinnerCandidate returns the winning contender, or nil if undecided.
func (m *Matchup) WinnerCandidate() *restaurant.Candidate {
	if m.Winner == nil {
		return nil
	}
	return m.Pair[*m.Winner]
}

// Round is one column of the bracket. Number is 1-indexed.
type Round struct {
	Number   int       `json:"number"`
	Active   bool      `json:"active"`
	Matchups []Matchup `json:"matchups"`
}

func (r *Round) decided() bool {
	for i := range r.Matchups {
		if !r.Matchups[i].Decided() {
			return false
		}
	}
	return true
}

// Bracket is the full tournament state. The zero value is not usable; call Build.
type Bracket struct {
	Rounds []Round `json:"rounds"`
}

// Build lays out log2(len(contenders)) rounds. Round 1 pairs contenders in
// order; later rounds start unresolved. The length of contenders must be a
// power of two and at least 2.
func Build(contenders []restaurant.Candidate) (*Bracket, error) {
	n := len(contenders)
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d contenders is not a power of two", ErrStructure, n)
	}

	total := bits.Len(uint(n)) - 1
	b := &Bracket{Rounds: make([]Round, total)}

	size := n / 2
	for r := range b.Rounds {
		round := Round{Number: r + 1, Matchups: make([]Matchup, size)}
		for i := range round.Matchups {
			round.Matchups[i] = Matchup{Round: r + 1, Index: i}
		}
		b.Rounds[r] = round
		size /= 2
	}

	first := b.Rounds[0].Matchups
	for i := range first {
		a, c := contenders[2*i], contenders[2*i+1]
		first[i].Pair = [2]*restaurant.Candidate{&a, &c}
	}
	return b, nil
}

// TotalRounds returns the number of rounds, including the final.
func (b *Bracket) TotalRounds() int { return len(b.Rounds) }

// Round returns the round with the given 1-indexed number.
func (b *Bracket) Round(number int) (*Round, bool) {
	if number < 1 || number > len(b.Rounds) {
		return nil, false
	}
	return &b.Rounds[number-1], true
}

// Activate opens a round for voting. It is called for round 1 after Build;
// RecordVote activates later rounds itself.
func (b *Bracket) Activate(number int) error {
	r, ok := b.Round(number)
	if !ok {
		return fmt.Errorf("%w: round %d", ErrNoSuchMatchup, number)
	}
	r.Active = true
	return nil
}

// Champion returns the winner of the final, or nil while undecided.
func (b *Bracket) Champion() *restaurant.Candidate {
	if len(b.Rounds) == 0 {
		return nil
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final.Matchups) != 1 {
		return nil
	}
	return final.Matchups[0].WinnerCandidate()
}

// Complete reports whether the final has been decided.
func (b *Bracket) Complete() bool { return b.Champion() != nil }

// CurrentRound returns the number of the latest activated round, or 0.
func (b *Bracket) CurrentRound() int {
	current := 0
	for _, r := range b.Rounds {
		if r.Active {
			current = r.Number
		}
	}
	return current
}

// advance copies every winner of the completed round into the next round.
// All target slots are checked before any is written.
func (b *Bracket) advance(completed int) error {
	from, ok := b.Round(completed)
	if !ok {
		return fmt.Errorf("%w: advancing from round %d", ErrStructure, completed)
	}
	to, ok := b.Round(completed + 1)
	if !ok {
		return fmt.Errorf("%w: no round after %d", ErrStructure, completed)
	}
	if len(to.Matchups)*2 != len(from.Matchups) {
		return fmt.Errorf("%w: round %d has %d matchups, round %d has %d",
			ErrStructure, completed, len(from.Matchups), completed+1, len(to.Matchups))
	}

	for i := range from.Matchups {
		if !from.Matchups[i].Decided() {
			return fmt.Errorf("%w: round %d matchup %d undecided", ErrStructure, completed, i)
		}
		if to.Matchups[i/2].Pair[i%2] != nil {
			return fmt.Errorf("%w: round %d matchup %d slot %d already filled",
				ErrStructure, completed+1, i/2, i%2)
		}
	}

	for i := range from.Matchups {
		to.Matchups[i/2].Pair[i%2] = from.Matchups[i].WinnerCandidate()
	}
	return nil
}
