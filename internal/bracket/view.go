package bracket

import (
	"strconv"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// Placeholder is the display name of an unresolved slot.
const Placeholder = "TBD"

// View is a render-ready snapshot of a bracket. It holds no references into
// the bracket it was projected from.
type View struct {
	TotalRounds  int           `json:"totalRounds"`
	CurrentRound int           `json:"currentRound"`
	Complete     bool          `json:"complete"`
	Rounds       []RoundView   `json:"rounds"`
	Champion     *ChampionView `json:"champion"`
}

// RoundView is one column of the rendered bracket.
type RoundView struct {
	Number   int           `json:"number"`
	Title    string        `json:"title"`
	Active   bool          `json:"active"`
	Matchups []MatchupView `json:"matchups"`
}

// MatchupView is a rendered matchup. CanVote is set only while it accepts a vote.
type MatchupView struct {
	Round   int           `json:"round"`
	Index   int           `json:"index"`
	Options [2]OptionView `json:"options"`
	CanVote bool          `json:"canVote"`
	Decided bool          `json:"decided"`
}

// OptionView is one slot of a matchup. Pick is the value to send when voting for it.
type OptionView struct {
	Pick        int    `json:"pick"`
	Name        string `json:"name"`
	Placeholder bool   `json:"placeholder"`
	Winner      bool   `json:"winner"`
	Loser       bool   `json:"loser"`
}

// ChampionView carries what the winner screen shows.
type ChampionView struct {
	Name    string  `json:"name"`
	Cuisine string  `json:"cuisine"`
	Budget  string  `json:"budget"`
	Rating  float64 `json:"rating"`
}

// Project renders the current state of b.
func Project(b *Bracket) View {
	v := View{
		TotalRounds:  b.TotalRounds(),
		CurrentRound: b.CurrentRound(),
		Rounds:       make([]RoundView, 0, len(b.Rounds)),
	}

	for _, r := range b.Rounds {
		rv := RoundView{
			Number:   r.Number,
			Title:    roundTitle(r.Number),
			Active:   r.Active,
			Matchups: make([]MatchupView, 0, len(r.Matchups)),
		}
		for _, m := range r.Matchups {
			rv.Matchups = append(rv.Matchups, projectMatchup(r.Active, m))
		}
		v.Rounds = append(v.Rounds, rv)
	}

	if c := b.Champion(); c != nil {
		v.Complete = true
		v.Champion = projectChampion(*c)
	}
	return v
}

func projectMatchup(active bool, m Matchup) MatchupView {
	mv := MatchupView{
		Round:   m.Round,
		Index:   m.Index,
		Decided: m.Decided(),
	}
	resolved := true
	for i, c := range m.Pair {
		opt := OptionView{Pick: i, Name: Placeholder, Placeholder: true}
		if c != nil {
			opt.Name = c.Name
			opt.Placeholder = false
		} else {
			resolved = false
		}
		if m.Winner != nil {
			opt.Winner = *m.Winner == i
			opt.Loser = *m.Winner != i
		}
		mv.Options[i] = opt
	}
	mv.CanVote = active && resolved && !mv.Decided
	return mv
}

func projectChampion(c restaurant.Candidate) *ChampionView {
	return &ChampionView{
		Name:    c.Name,
		Cuisine: c.Cuisine,
		Budget:  c.BudgetLabel(),
		Rating:  c.Rating,
	}
}

func roundTitle(number int) string {
	return "Round " + strconv.Itoa(number)
}
