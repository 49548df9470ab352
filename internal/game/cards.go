package game

import (
	"fmt"
	"math/rand"
	"time"
)

type Suit int

type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

var rankChars = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

var suitChars = map[Suit]string{Spades: "s", Hearts: "h", Diamonds: "d", Clubs: "c"}

// Card is an immutable rank/suit pair. Ace ranks high (14); the wheel
// straight is the evaluator's business.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return rankChars[c.Rank] + suitChars[c.Suit]
}

// ParseCard reverses Card.String, e.g. "Ah" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("malformed card %q", s)
	}
	var card Card
	found := false
	for r, ch := range rankChars {
		if ch == s[:1] {
			card.Rank = r
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("unknown rank in %q", s)
	}
	found = false
	for su, ch := range suitChars {
		if ch == s[1:] {
			card.Suit = su
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("unknown suit in %q", s)
	}
	return card, nil
}

// Deck is the 52-card draw sequence for one hand. Cards come off the front;
// a card never appears twice within a hand.
type Deck struct {
	cards []Card
}

func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

func deckFromCards(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

func (d *Deck) Shuffle() {
	d.ShuffleWith(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ShuffleWith accepts the RNG so hands can be replayed deterministically.
func (d *Deck) ShuffleWith(rnd *rand.Rand) {
	rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. A realistic table never empties the
// deck, so exhaustion is an invariant violation rather than user error.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undrawn remainder, for snapshots.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
