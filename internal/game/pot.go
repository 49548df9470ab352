package game

import "sort"

// Contribution is one seat's total stake in the hand, as seen by the pot
// calculator. Pure input; the calculator never touches Seat itself.
type Contribution struct {
	Seat   int
	Amount int64
	Folded bool
}

// Pot is one layer of the (possibly side-potted) pot: an amount and the
// seats allowed to win it.
type Pot struct {
	Amount   int64
	Eligible []int
}

// BuildPots partitions contributions into layered pots, one per distinct
// contribution tier, ascending. A seat that went all-in short is eligible
// only for layers at or below its own tier.
//
// A layer whose contributors have all folded cannot be won at showdown; its
// chips are folded into the nearest lower layer that still has an eligible
// seat, so no chip is ever lost.
func BuildPots(contribs []Contribution) []Pot {
	active := make([]Contribution, 0, len(contribs))
	for _, c := range contribs {
		if c.Amount > 0 {
			active = append(active, c)
		}
	}
	if len(active) == 0 {
		return nil
	}

	levels := make([]int64, 0, len(active))
	seen := map[int64]bool{}
	for _, c := range active {
		if !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	pots := make([]Pot, 0, len(levels))
	prev := int64(0)
	for _, level := range levels {
		pot := Pot{}
		for _, c := range active {
			if c.Amount <= prev {
				continue
			}
			pot.Amount += level - prev
			if !c.Folded {
				pot.Eligible = append(pot.Eligible, c.Seat)
			}
		}
		sort.Ints(pot.Eligible)
		pots = append(pots, pot)
		prev = level
	}

	return mergeDeadLayers(pots)
}

// mergeDeadLayers rolls layers with no eligible winner into the nearest
// lower live layer. Dead layers only arise at the top tiers, when the
// deepest stacks folded after contributing.
func mergeDeadLayers(pots []Pot) []Pot {
	out := make([]Pot, 0, len(pots))
	carried := int64(0)
	for i := len(pots) - 1; i >= 0; i-- {
		p := pots[i]
		p.Amount += carried
		carried = 0
		if len(p.Eligible) == 0 {
			carried = p.Amount
			continue
		}
		out = append(out, p)
	}
	// Reverse back to ascending-tier order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if carried > 0 {
		if len(out) > 0 {
			out[0].Amount += carried
		} else {
			// Every contributor folded; keep the chips visible so the
			// engine can hand them to the last-standing seat.
			out = append(out, Pot{Amount: carried})
		}
	}
	return out
}

// Payouts settles every pot layer at showdown. Each layer goes to the
// eligible seats holding the best rank; splits assign any odd chips one at
// a time in ascending seat order, so payouts are deterministic.
func Payouts(pots []Pot, ranks map[int]HandRank) map[int]int64 {
	payouts := map[int]int64{}
	for _, pot := range pots {
		winners := make([]int, 0, len(pot.Eligible))
		var best HandRank
		for _, seat := range pot.Eligible {
			rank, ok := ranks[seat]
			if !ok {
				continue
			}
			switch {
			case len(winners) == 0 || rank.BetterThan(best):
				winners = winners[:0]
				winners = append(winners, seat)
				best = rank
			case rank.Equal(best):
				winners = append(winners, seat)
			}
		}
		if len(winners) == 0 {
			continue
		}
		sort.Ints(winners)
		share := pot.Amount / int64(len(winners))
		remainder := pot.Amount % int64(len(winners))
		for _, seat := range winners {
			payouts[seat] += share
			if remainder > 0 {
				payouts[seat]++
				remainder--
			}
		}
	}
	return payouts
}
