package models

import (
	"sort"
	"strconv"
)

// DefaultGame is reported for items no category block was matched for.
const DefaultGame = "Steam event"

// Game is the category label of an item. The zero value means no
// category block matched the item.
type Game struct {
	Label   string
	Matched bool
}

// GameOf returns a matched Game with the given label.
func GameOf(label string) Game {
	return Game{Label: label, Matched: true}
}

func (g Game) String() string {
	if !g.Matched {
		return DefaultGame
	}
	return g.Label
}

// Item is one marketplace listing as extracted from a search page.
type Item struct {
	Name     string
	Game     Game
	URL      string
	Img      string
	Quantity int
	Price    float64
}

// SearchItem is an item read from the JSON search endpoint. Price keeps
// the digits and dots of the price text; callers parse it themselves.
type SearchItem struct {
	Name     string
	Game     Game
	URL      string
	Img      string
	Quantity int
	Price    string
}

// Item converts s for persistence. An unparseable price becomes 0.
func (s SearchItem) Item() Item {
	price, err := strconv.ParseFloat(s.Price, 64)
	if err != nil || price < 0 {
		price = 0
	}
	return Item{
		Name:     s.Name,
		Game:     s.Game,
		URL:      s.URL,
		Img:      s.Img,
		Quantity: s.Quantity,
		Price:    price,
	}
}

// TotalCount is the number of results the search endpoint reported.
// The zero value is an unknown count.
type TotalCount struct {
	n     int
	known bool
}

// KnownTotal returns a confirmed count.
func KnownTotal(n int) TotalCount {
	return TotalCount{n: n, known: true}
}

// Value returns the count and whether it is known.
func (t TotalCount) Value() (int, bool) {
	return t.n, t.known
}

// Int returns the count, or -1 when it could not be determined.
func (t TotalCount) Int() int {
	if !t.known {
		return -1
	}
	return t.n
}

// SearchResult is what one JSON search document yields.
type SearchResult struct {
	Items []SearchItem
	Total TotalCount
}

// ItemSet is the name-keyed working set of one extraction run.
type ItemSet map[string]Item

func NewItemSet() ItemSet {
	return make(ItemSet)
}

// Put stores it under its name, replacing any earlier item of that name.
func (s ItemSet) Put(it Item) {
	s[it.Name] = it
}

// Names returns the item names in sorted order.
func (s ItemSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge copies every item of other into s, last write wins.
func (s ItemSet) Merge(other ItemSet) {
	for name, it := range other {
		s[name] = it
	}
}

// DedupSearchItems folds an ordered result list into s. A later result
// with the same name replaces the earlier one.
func (s ItemSet) DedupSearchItems(items []SearchItem) {
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		s.Put(it.Item())
	}
}
