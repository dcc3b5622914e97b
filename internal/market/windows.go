package market

import "github.com/talgya/wareworld/internal/ware"

// Span is a half-open index range into the offer book.
type Span struct {
	Start, End int
}

// Len reports the number of offers covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Window is one ware's contiguous slice of a sorted book: the buy run
// followed by the sell run. Both are index ranges into the single backing
// array, so clearing can decrement remaining amounts in place without
// copying the book.
type Window struct {
	Type  ware.Type
	buys  Span
	sells Span
	book  []Offer
}

// Buys returns the window's buy offers, price ascending. Clearing scans
// this slice from the tail: the highest price is the highest willingness
// to pay.
func (w Window) Buys() []Offer {
	return w.book[w.buys.Start:w.buys.End]
}

// Sells returns the window's sell offers, price ascending.
func (w Window) Sells() []Offer {
	return w.book[w.sells.Start:w.sells.End]
}

// WindowIter walks a sorted book one ware at a time. Restart by calling
// Market.Windows again.
type WindowIter struct {
	book  []Offer
	index int
}

// Windows returns a fresh iterator over the book's per-ware windows.
// The book must already be sorted.
func (m *Market) Windows() *WindowIter {
	return &WindowIter{book: m.offers}
}

// Next yields the next (ware type, buy span, sell span) window, or false
// when the book is exhausted.
func (it *WindowIter) Next() (Window, bool) {
	if it.index >= len(it.book) {
		return Window{}, false
	}
	t := it.book[it.index].Ware.Type

	buys := Span{Start: it.index, End: it.index}
	for buys.End < len(it.book) && it.book[buys.End].Ware.Type == t && it.book[buys.End].Side == Buy {
		buys.End++
	}

	sells := Span{Start: buys.End, End: buys.End}
	for sells.End < len(it.book) && it.book[sells.End].Ware.Type == t && it.book[sells.End].Side == Sell {
		sells.End++
	}

	it.index = sells.End
	return Window{Type: t, buys: buys, sells: sells, book: it.book}, true
}
