// Package events provides the observer stream the economic core reports
// into. The core never logs directly; it calls a Recorder and the outer
// layers decide what to do with the stream (log it, buffer it for the API,
// broadcast it to websocket clients).
package events

import (
	"log/slog"
	"sync"

	"github.com/talgya/wareworld/internal/market"
	"github.com/talgya/wareworld/internal/ware"
)

// Kind classifies an event.
type Kind string

const (
	KindOfferCreated Kind = "offer_created"
	KindTradeSettled Kind = "trade_settled"
	KindDayCompleted Kind = "day_completed"
)

// Event is one notable occurrence during a trading day.
type Event struct {
	Day  uint64 `json:"day"`
	Kind Kind   `json:"kind"`

	// Offer fields (offer_created).
	Offer *market.Offer `json:"offer,omitempty"`

	// Trade fields (trade_settled).
	Buyer    market.EntityID `json:"buyer,omitempty"`
	Seller   market.EntityID `json:"seller,omitempty"`
	Ware     ware.Ware       `json:"ware,omitempty"`
	Price    ware.Amount     `json:"price,omitempty"`

	// Day summary fields (day_completed).
	Offers int `json:"offers,omitempty"`
	Trades int `json:"trades,omitempty"`
}

// Recorder receives events as they happen.
type Recorder interface {
	Record(Event)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(Event) {}

// Logger writes events to slog at debug level (day summaries at info).
type Logger struct{}

func (Logger) Record(ev Event) {
	switch ev.Kind {
	case KindOfferCreated:
		slog.Debug("offer created", "day", ev.Day, "offer", ev.Offer.String())
	case KindTradeSettled:
		slog.Debug("trade settled",
			"day", ev.Day, "buyer", ev.Buyer, "seller", ev.Seller,
			"ware", ev.Ware.String(), "unit_price", ev.Price)
	case KindDayCompleted:
		slog.Info("trading day completed", "day", ev.Day, "offers", ev.Offers, "trades", ev.Trades)
	}
}

// Ring keeps the most recent events in memory for the read-only API.
type Ring struct {
	mu   sync.Mutex
	buf  []Event
	max  int
}

// NewRing creates a ring keeping up to max events.
func NewRing(max int) *Ring {
	return &Ring{max: max}
}

func (r *Ring) Record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, ev)
	if len(r.buf) > r.max {
		r.buf = r.buf[len(r.buf)-r.max:]
	}
}

// Recent returns a copy of the buffered events, oldest first.
func (r *Ring) Recent() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.buf...)
}

// Tee fans an event out to several recorders.
type Tee []Recorder

func (t Tee) Record(ev Event) {
	for _, r := range t {
		r.Record(ev)
	}
}
