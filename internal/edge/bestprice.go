package edge

import (
	"sort"

	"github.com/hetulpatel/OddsEdge/internal/models"
)

// sortedBooks returns the event's bookmakers ordered by key so that scans and
// tie-breaks are reproducible regardless of feed order.
func sortedBooks(ev models.Event) []models.Bookmaker {
	books := make([]models.Bookmaker, len(ev.Bookmakers))
	copy(books, ev.Bookmakers)
	sort.Slice(books, func(i, j int) bool { return books[i].Key < books[j].Key })
	return books
}

// FindBestOdds returns the single most favorable quote for the outcome across
// all books quoting it. A higher American price is always better for the
// bettor, across the sign boundary (+150 beats -105 beats -110). Ties go to
// the first book in sorted-key order. When outcome is empty, the first
// outcome encountered is used. The second return is false when no book
// quotes the outcome.
func FindBestOdds(ev models.Event, market models.MarketType, outcome string) (models.BookQuote, bool) {
	var best models.BookQuote
	found := false
	for _, book := range sortedBooks(ev) {
		for _, m := range book.Markets {
			if m.Key != market {
				continue
			}
			for _, q := range m.Outcomes {
				if q.Name == "" || !q.ValidPrice() {
					continue
				}
				if outcome == "" {
					outcome = q.Name
				}
				if q.Name != outcome {
					continue
				}
				if !found || q.Price > best.Quote.Price {
					best = models.BookQuote{Book: book.Key, Quote: q}
					found = true
				}
			}
		}
	}
	return best, found
}

// BestInGroup returns the highest-priced quote in an outcome group built by
// GroupQuotes. Group order is deterministic, so ties resolve to the first
// book in sorted-key order here too.
func BestInGroup(group []models.BookQuote) (models.BookQuote, bool) {
	var best models.BookQuote
	found := false
	for _, bq := range group {
		if !bq.Quote.ValidPrice() {
			continue
		}
		if !found || bq.Quote.Price > best.Quote.Price {
			best = bq
			found = true
		}
	}
	return best, found
}

// GroupQuotes collects every book's quotes for one market of one event, keyed
// by outcome (name plus point for spreads and totals). Quotes missing a name
// or price are dropped. Books are visited in sorted-key order so group order
// is deterministic.
func GroupQuotes(ev models.Event, market models.MarketType) (map[string][]models.BookQuote, []string) {
	groups := make(map[string][]models.BookQuote)
	var order []string
	for _, book := range sortedBooks(ev) {
		for _, m := range book.Markets {
			if m.Key != market {
				continue
			}
			for _, q := range m.Outcomes {
				if q.Name == "" || !q.ValidPrice() {
					continue
				}
				key := q.OutcomeKey()
				if _, ok := groups[key]; !ok {
					order = append(order, key)
				}
				groups[key] = append(groups[key], models.BookQuote{Book: book.Key, Quote: q})
			}
		}
	}
	return groups, order
}

// GroupQuotesByName groups a market's quotes by outcome name alone, ignoring
// the point. Movement tracking uses this so a side keeps its identity when
// its line moves to a new point; edge detection keeps the point-keyed
// grouping, where different points are different bets.
func GroupQuotesByName(ev models.Event, market models.MarketType) (map[string][]models.BookQuote, []string) {
	groups := make(map[string][]models.BookQuote)
	var order []string
	for _, book := range sortedBooks(ev) {
		for _, m := range book.Markets {
			if m.Key != market {
				continue
			}
			for _, q := range m.Outcomes {
				if q.Name == "" || !q.ValidPrice() {
					continue
				}
				if _, ok := groups[q.Name]; !ok {
					order = append(order, q.Name)
				}
				groups[q.Name] = append(groups[q.Name], models.BookQuote{Book: book.Key, Quote: q})
			}
		}
	}
	return groups, order
}
