package game

import (
	"reflect"
	"testing"
)

func TestBuildPotsThreeWayAllIn(t *testing.T) {
	// Stacks 50/100/200 all-in: 150 three ways, 100 two ways, 100 back to
	// the deep stack alone.
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 50},
		{Seat: 1, Amount: 100},
		{Seat: 2, Amount: 200},
	})
	want := []Pot{
		{Amount: 150, Eligible: []int{0, 1, 2}},
		{Amount: 100, Eligible: []int{1, 2}},
		{Amount: 100, Eligible: []int{2}},
	}
	if !reflect.DeepEqual(pots, want) {
		t.Fatalf("expected %+v, got %+v", want, pots)
	}
}

func TestBuildPotsEqualContributionsSinglePot(t *testing.T) {
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 100},
		{Seat: 1, Amount: 100},
		{Seat: 2, Amount: 100},
	})
	if len(pots) != 1 || pots[0].Amount != 300 {
		t.Fatalf("expected one 300 pot, got %+v", pots)
	}
}

func TestBuildPotsFoldedSeatFundsButCannotWin(t *testing.T) {
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 100},
		{Seat: 1, Amount: 100, Folded: true},
		{Seat: 2, Amount: 100},
	})
	if len(pots) != 1 || pots[0].Amount != 300 {
		t.Fatalf("expected one 300 pot, got %+v", pots)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{0, 2}) {
		t.Fatalf("folded seat must not be eligible: %+v", pots[0].Eligible)
	}
}

func TestBuildPotsDeadLayerCarries(t *testing.T) {
	// The deepest stack folded; its top layer has no eligible seat and
	// rolls down into the nearest live layer.
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 50},
		{Seat: 1, Amount: 100},
		{Seat: 2, Amount: 200, Folded: true},
	})
	want := []Pot{
		{Amount: 150, Eligible: []int{0, 1}},
		{Amount: 200, Eligible: []int{1}},
	}
	if !reflect.DeepEqual(pots, want) {
		t.Fatalf("expected %+v, got %+v", want, pots)
	}
}

func TestBuildPotsIgnoresZeroContributions(t *testing.T) {
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 0},
		{Seat: 1, Amount: 60},
		{Seat: 2, Amount: 60},
	})
	if len(pots) != 1 || pots[0].Amount != 120 {
		t.Fatalf("expected one 120 pot, got %+v", pots)
	}
	if !reflect.DeepEqual(pots[0].Eligible, []int{1, 2}) {
		t.Fatalf("zero contributor must not appear: %+v", pots[0].Eligible)
	}
}

func TestPayoutsSingleWinnerPerLayer(t *testing.T) {
	pots := []Pot{
		{Amount: 150, Eligible: []int{0, 1, 2}},
		{Amount: 100, Eligible: []int{1, 2}},
		{Amount: 100, Eligible: []int{2}},
	}
	// Seat 0 holds the best hand but is capped at the first layer.
	ranks := map[int]HandRank{
		0: {Category: FourOfAKind, Tiebreaks: []int{14, 13}},
		1: {Category: Pair, Tiebreaks: []int{10, 14, 9, 8}},
		2: {Category: HighCard, Tiebreaks: []int{14, 12, 10, 8, 6}},
	}
	payouts := Payouts(pots, ranks)
	if payouts[0] != 150 {
		t.Fatalf("short all-in should win only its layer: %+v", payouts)
	}
	if payouts[1] != 100 {
		t.Fatalf("middle stack should win the second layer: %+v", payouts)
	}
	if payouts[2] != 100 {
		t.Fatalf("deep stack should get its excess back: %+v", payouts)
	}
}

func TestPayoutsSplitWithOddChip(t *testing.T) {
	pots := []Pot{{Amount: 101, Eligible: []int{2, 5}}}
	rank := HandRank{Category: Straight, Tiebreaks: []int{9}}
	payouts := Payouts(pots, map[int]HandRank{2: rank, 5: rank})
	if payouts[2] != 51 || payouts[5] != 50 {
		t.Fatalf("odd chip goes to the lowest seat index: %+v", payouts)
	}
}

func TestPayoutsConserveChips(t *testing.T) {
	pots := BuildPots([]Contribution{
		{Seat: 0, Amount: 37},
		{Seat: 1, Amount: 211},
		{Seat: 2, Amount: 211},
		{Seat: 3, Amount: 90, Folded: true},
	})
	rank := HandRank{Category: TwoPair, Tiebreaks: []int{11, 4, 14}}
	payouts := Payouts(pots, map[int]HandRank{0: rank, 1: rank, 2: rank})
	var contributed, paid int64
	for _, a := range []int64{37, 211, 211, 90} {
		contributed += a
	}
	for _, p := range payouts {
		paid += p
	}
	if contributed != paid {
		t.Fatalf("chips leaked: contributed %d, paid %d", contributed, paid)
	}
}
