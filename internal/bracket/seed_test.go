package bracket_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playperu/dinnerbracket/internal/bracket"
	"github.com/playperu/dinnerbracket/internal/restaurant"
)

func anyWithin(d float64) restaurant.Filter {
	return restaurant.Filter{Cuisine: restaurant.AnyCuisine, MaxDistance: d}
}

func TestSize(t *testing.T) {
	cases := map[int]int{0: 2, 1: 2, 2: 2, 3: 2, 4: 4, 5: 4, 7: 4, 8: 8, 9: 8, 15: 8, 16: 16, 17: 16}
	for n, want := range cases {
		require.Equal(t, want, bracket.Size(n), "Size(%d)", n)
	}
}

func TestSeed_Insufficient(t *testing.T) {
	cs := []restaurant.Candidate{
		{Name: "Near", Cuisine: "thai", Rating: 4, Distance: 1},
		{Name: "Far", Cuisine: "thai", Rating: 5, Distance: 50},
	}
	_, err := bracket.Seed(cs, anyWithin(10))
	require.ErrorIs(t, err, bracket.ErrInsufficientContenders)

	_, err = bracket.Seed(nil, anyWithin(10))
	require.ErrorIs(t, err, bracket.ErrInsufficientContenders)
}

// TestSeed_SizeAndOrder checks every filtered count from 2 to 40.
func TestSeed_SizeAndOrder(t *testing.T) {
	for n := 2; n <= 40; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			cs := make([]restaurant.Candidate, n)
			for i := range cs {
				cs[i] = restaurant.Candidate{
					Name:     fmt.Sprintf("r%02d", i),
					Cuisine:  "any-food",
					Rating:   float64((i*7)%11) / 2,
					Distance: 1,
				}
			}

			got, err := bracket.Seed(cs, anyWithin(5))
			require.NoError(t, err)
			require.Equal(t, bracket.Size(n), len(got))
			require.LessOrEqual(t, len(got), n)
			require.Zero(t, len(got)&(len(got)-1), "length %d is not a power of two", len(got))

			for i := 1; i < len(got); i++ {
				require.GreaterOrEqual(t, got[i-1].Rating, got[i].Rating)
				if got[i-1].Rating == got[i].Rating {
					require.Less(t, got[i-1].Name, got[i].Name, "ties must keep dataset order")
				}
			}
		})
	}
}

func TestSeed_DoesNotModifyInput(t *testing.T) {
	cs := []restaurant.Candidate{
		{Name: "Low", Rating: 3, Distance: 1},
		{Name: "High", Rating: 5, Distance: 1},
		{Name: "Mid", Rating: 4, Distance: 1},
	}
	_, err := bracket.Seed(cs, anyWithin(2))
	require.NoError(t, err)
	require.Equal(t, "Low", cs[0].Name)
	require.Equal(t, "High", cs[1].Name)
}

func TestSeed_ItalianWithinFive(t *testing.T) {
	cs := []restaurant.Candidate{
		{Name: "Osteria", Cuisine: "italian", Budget: 3, Rating: 4.4, Distance: 2},
		{Name: "Taqueria", Cuisine: "mexican", Budget: 1, Rating: 4.9, Distance: 1},
		{Name: "Trattoria", Cuisine: "italian", Budget: 2, Rating: 4.7, Distance: 5},
		{Name: "Far Pasta", Cuisine: "italian", Budget: 2, Rating: 5.0, Distance: 9},
		{Name: "Pizzeria", Cuisine: "italian", Budget: 1, Rating: 3.9, Distance: 4},
		{Name: "Distant Villa", Cuisine: "italian", Budget: 4, Rating: 4.8, Distance: 12},
	}

	got, err := bracket.Seed(cs, restaurant.Filter{Cuisine: "italian", MaxDistance: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Trattoria", got[0].Name)
	require.Equal(t, "Osteria", got[1].Name)
}

func TestSeed_Budget(t *testing.T) {
	one := 1
	cs := []restaurant.Candidate{
		{Name: "Cheap", Budget: 1, Rating: 4, Distance: 1},
		{Name: "Pricey", Budget: 3, Rating: 5, Distance: 1},
		{Name: "Cheaper", Budget: 1, Rating: 3, Distance: 1},
	}

	got, err := bracket.Seed(cs, restaurant.Filter{Cuisine: restaurant.AnyCuisine, MaxBudget: &one, MaxDistance: 5})
	require.NoError(t, err)
	require.Equal(t, []string{"Cheap", "Cheaper"}, names(got))
}

func TestSeed_DefaultDataset(t *testing.T) {
	cs, err := restaurant.DefaultDataset()
	require.NoError(t, err)

	got, err := bracket.Seed(cs, restaurant.Filter{Cuisine: "italian", MaxDistance: 5})
	require.NoError(t, err)
	require.Equal(t, []string{"Mama Mia's", "Pizza Palace"}, names(got))

	got, err = bracket.Seed(cs, anyWithin(25))
	require.NoError(t, err)
	require.Len(t, got, 8)
	require.Equal(t, "El Fuego", got[0].Name)
	require.Equal(t, "Sitar", got[1].Name)
}

func names(cs []restaurant.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
