package game

import "sort"

type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c Category) String() string {
	switch c {
	case RoyalFlush:
		return "royal_flush"
	case StraightFlush:
		return "straight_flush"
	case FourOfAKind:
		return "four_of_a_kind"
	case FullHouse:
		return "full_house"
	case Flush:
		return "flush"
	case Straight:
		return "straight"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case TwoPair:
		return "two_pair"
	case Pair:
		return "pair"
	default:
		return "high_card"
	}
}

// HandRank orders hands: category first, then tiebreak values
// lexicographically. Equal ranks split the pot.
type HandRank struct {
	Category  Category
	Tiebreaks []int
}

func (h HandRank) BetterThan(o HandRank) bool {
	if h.Category != o.Category {
		return h.Category > o.Category
	}
	for i := 0; i < len(h.Tiebreaks) && i < len(o.Tiebreaks); i++ {
		if h.Tiebreaks[i] != o.Tiebreaks[i] {
			return h.Tiebreaks[i] > o.Tiebreaks[i]
		}
	}
	return false
}

func (h HandRank) Equal(o HandRank) bool {
	return !h.BetterThan(o) && !o.BetterThan(h)
}

// Evaluate7 classifies the best 5-card hand out of exactly 7 cards
// (2 hole + 5 community). Fewer or more cards is an engine bug.
func Evaluate7(cards []Card) (HandRank, error) {
	if len(cards) != 7 {
		return HandRank{}, ErrInvalidHandSize
	}

	// Flush line first. With 7 cards a flush cannot coexist with quads or a
	// full house, so a straight-flush check inside the flush suit settles
	// every flush-or-better category.
	bySuit := map[Suit][]int{}
	for _, c := range cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], int(c.Rank))
	}
	for _, suited := range bySuit {
		if len(suited) < 5 {
			continue
		}
		if ok, high := straightHigh(suited); ok {
			if high == int(Ace) {
				return HandRank{Category: RoyalFlush, Tiebreaks: []int{high}}, nil
			}
			return HandRank{Category: StraightFlush, Tiebreaks: []int{high}}, nil
		}
		sort.Sort(sort.Reverse(sort.IntSlice(suited)))
		return HandRank{Category: Flush, Tiebreaks: suited[:5]}, nil
	}

	values := make([]int, 0, 7)
	counts := map[int]int{}
	for _, c := range cards {
		values = append(values, int(c.Rank))
		counts[int(c.Rank)]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	type group struct {
		rank  int
		count int
	}
	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	if groups[0].count == 4 {
		kicker := highestExcluding(values, groups[0].rank)
		return HandRank{Category: FourOfAKind, Tiebreaks: []int{groups[0].rank, kicker}}, nil
	}
	if groups[0].count == 3 && groups[1].count >= 2 {
		return HandRank{Category: FullHouse, Tiebreaks: []int{groups[0].rank, groups[1].rank}}, nil
	}
	if ok, high := straightHigh(values); ok {
		return HandRank{Category: Straight, Tiebreaks: []int{high}}, nil
	}
	if groups[0].count == 3 {
		kickers := topKickers(values, []int{groups[0].rank}, 2)
		return HandRank{Category: ThreeOfAKind, Tiebreaks: append([]int{groups[0].rank}, kickers...)}, nil
	}
	if groups[0].count == 2 && groups[1].count == 2 {
		kicker := highestExcluding(values, groups[0].rank, groups[1].rank)
		return HandRank{Category: TwoPair, Tiebreaks: []int{groups[0].rank, groups[1].rank, kicker}}, nil
	}
	if groups[0].count == 2 {
		kickers := topKickers(values, []int{groups[0].rank}, 3)
		return HandRank{Category: Pair, Tiebreaks: append([]int{groups[0].rank}, kickers...)}, nil
	}
	return HandRank{Category: HighCard, Tiebreaks: values[:5]}, nil
}

// straightHigh finds the highest 5-run among distinct rank values. The wheel
// (A-2-3-4-5) needs its own check because Ace carries value 14.
func straightHigh(values []int) (bool, int) {
	unique := uniqueInts(values)
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))
	for i := 0; i+4 < len(unique); i++ {
		if unique[i]-unique[i+4] == 4 {
			return true, unique[i]
		}
	}
	if containsInt(unique, int(Ace)) && containsInt(unique, 5) && containsInt(unique, 4) &&
		containsInt(unique, 3) && containsInt(unique, 2) {
		return true, 5
	}
	return false, 0
}

func uniqueInts(values []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func highestExcluding(values []int, exclude ...int) int {
	for _, v := range values {
		if !containsInt(exclude, v) {
			return v
		}
	}
	return 0
}

func topKickers(values []int, exclude []int, n int) []int {
	out := make([]int, 0, n)
	for _, v := range values {
		if containsInt(exclude, v) {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}
