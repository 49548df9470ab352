package game

import (
	"sort"
	"testing"
)

func evaluate(t *testing.T, strs ...string) HandRank {
	t.Helper()
	r, err := Evaluate7(mustCards(t, strs...))
	if err != nil {
		t.Fatalf("evaluate %v: %v", strs, err)
	}
	return r
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		want  Category
	}{
		{"royal flush", []string{"As", "Ks", "Qs", "Js", "Ts", "2h", "3c"}, RoyalFlush},
		{"straight flush", []string{"9s", "8s", "7s", "6s", "5s", "2h", "3c"}, StraightFlush},
		{"four of a kind", []string{"Ah", "Ad", "Ac", "As", "Kd", "2h", "3c"}, FourOfAKind},
		{"full house", []string{"Ah", "Ad", "Ac", "Ks", "Kd", "2h", "3c"}, FullHouse},
		{"flush", []string{"Ah", "Jh", "9h", "6h", "2h", "Kd", "3c"}, Flush},
		{"straight", []string{"9s", "8d", "7s", "6c", "5s", "Ah", "Ad"}, Straight},
		{"three of a kind", []string{"Ah", "Ad", "Ac", "Ks", "9d", "2h", "3c"}, ThreeOfAKind},
		{"two pair", []string{"Ah", "Ad", "Kc", "Ks", "9d", "2h", "3c"}, TwoPair},
		{"pair", []string{"Ah", "Ad", "Kc", "Qs", "9d", "2h", "3c"}, Pair},
		{"high card", []string{"Ah", "Jd", "9c", "7s", "5d", "3h", "2c"}, HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(t, tt.cards...)
			if got.Category != tt.want {
				t.Fatalf("expected %s, got %s (%v)", tt.want, got.Category, got.Tiebreaks)
			}
		})
	}
}

func TestEvaluateWheel(t *testing.T) {
	wheel := evaluate(t, "As", "2h", "3d", "4c", "5s", "9h", "Jd")
	if wheel.Category != Straight {
		t.Fatalf("expected straight, got %s", wheel.Category)
	}
	if wheel.Tiebreaks[0] != 5 {
		t.Fatalf("wheel high card should be 5, got %d", wheel.Tiebreaks[0])
	}

	sixHigh := evaluate(t, "2s", "3h", "4d", "5c", "6s", "9h", "Jd")
	if !sixHigh.BetterThan(wheel) {
		t.Fatalf("6-high straight must beat the wheel")
	}

	highCard := evaluate(t, "Ah", "Jd", "9c", "7s", "5d", "3h", "2c")
	if !wheel.BetterThan(highCard) {
		t.Fatalf("wheel must beat high card")
	}
}

func TestEvaluateFullHouseFromTwoTrips(t *testing.T) {
	r := evaluate(t, "Ah", "Ad", "Ac", "Ks", "Kd", "Kc", "3c")
	if r.Category != FullHouse {
		t.Fatalf("expected full house, got %s", r.Category)
	}
	if r.Tiebreaks[0] != int(Ace) || r.Tiebreaks[1] != int(King) {
		t.Fatalf("expected aces full of kings, got %v", r.Tiebreaks)
	}
}

func TestEvaluateStraightBeatsTrips(t *testing.T) {
	// Trips and a straight in the same 7 cards: the straight must win out.
	r := evaluate(t, "5s", "5h", "5d", "6c", "7s", "8h", "9d")
	if r.Category != Straight {
		t.Fatalf("expected straight over trips, got %s", r.Category)
	}
	if r.Tiebreaks[0] != 9 {
		t.Fatalf("expected 9-high straight, got %v", r.Tiebreaks)
	}
}

func TestEvaluateRejectsWrongSize(t *testing.T) {
	if _, err := Evaluate7(mustCards(t, "Ah", "Kd", "3c")); err != ErrInvalidHandSize {
		t.Fatalf("expected ErrInvalidHandSize, got %v", err)
	}
}

func TestEvaluateTieIsSymmetric(t *testing.T) {
	a := evaluate(t, "Ah", "Kd", "Qc", "Js", "9d", "3h", "2c")
	b := evaluate(t, "As", "Kh", "Qd", "Jc", "9s", "3d", "2h")
	if !a.Equal(b) {
		t.Fatalf("identical values in different suits must tie: %v vs %v", a, b)
	}
}

// refEval5 classifies exactly 5 cards. The sampled property below checks
// that the direct 7-card classification equals the best over all 21
// 5-card subsets, so Evaluate7 truly finds the best 5 of 7.
func refEval5(cards []Card) HandRank {
	values := make([]int, 0, 5)
	counts := map[int]int{}
	suits := map[Suit]int{}
	for _, c := range cards {
		values = append(values, int(c.Rank))
		counts[int(c.Rank)]++
		suits[c.Suit]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	flush := false
	for _, n := range suits {
		if n == 5 {
			flush = true
		}
	}
	straight, high := straightHigh(values)

	if flush && straight {
		if high == int(Ace) {
			return HandRank{Category: RoyalFlush, Tiebreaks: []int{high}}
		}
		return HandRank{Category: StraightFlush, Tiebreaks: []int{high}}
	}

	type group struct{ rank, count int }
	groups := []group{}
	for r, n := range counts {
		groups = append(groups, group{r, n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Tiebreaks: []int{groups[0].rank, highestExcluding(values, groups[0].rank)}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Tiebreaks: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return HandRank{Category: Flush, Tiebreaks: values}
	case straight:
		return HandRank{Category: Straight, Tiebreaks: []int{high}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreaks: append([]int{groups[0].rank}, topKickers(values, []int{groups[0].rank}, 2)...)}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Tiebreaks: []int{groups[0].rank, groups[1].rank, highestExcluding(values, groups[0].rank, groups[1].rank)}}
	case groups[0].count == 2:
		return HandRank{Category: Pair, Tiebreaks: append([]int{groups[0].rank}, topKickers(values, []int{groups[0].rank}, 3)...)}
	default:
		return HandRank{Category: HighCard, Tiebreaks: values}
	}
}

func refBestOf7(cards []Card) HandRank {
	best := HandRank{Category: -1}
	pick := make([]Card, 5)
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			for c := b + 1; c < 7; c++ {
				for d := c + 1; d < 7; d++ {
					for e := d + 1; e < 7; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						if r := refEval5(pick); r.BetterThan(best) {
							best = r
						}
					}
				}
			}
		}
	}
	return best
}

func TestEvaluateMatchesBruteForceSampled(t *testing.T) {
	rnd := newTestRand(42)
	for i := 0; i < 2000; i++ {
		d := NewDeck()
		d.ShuffleWith(rnd)
		seven := make([]Card, 7)
		for j := range seven {
			c, err := d.Draw()
			if err != nil {
				t.Fatalf("draw: %v", err)
			}
			seven[j] = c
		}
		got, err := Evaluate7(seven)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		want := refBestOf7(seven)
		if got.Category != want.Category {
			t.Fatalf("hand %v: category %s, brute force found %s", seven, got.Category, want.Category)
		}
		if got.BetterThan(want) || want.BetterThan(got) {
			t.Fatalf("hand %v: rank %v, brute force found %v", seven, got, want)
		}
	}
}
