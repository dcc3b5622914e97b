package ware

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInsufficient is returned by exact removals when the ledger holds less
// than the requested quantity. The ledger is left unmutated.
var ErrInsufficient = errors.New("insufficient ware")

// Store is a ware ledger: a mapping from ware type to held quantity.
// A type is present only while its amount is positive; every mutation
// cleans zero entries.
type Store struct {
	wares map[Type]Amount
}

// NewStore creates an empty ledger.
func NewStore() Store {
	return Store{wares: make(map[Type]Amount)}
}

// StoreOf creates a ledger holding the given wares.
func StoreOf(wares ...Ware) Store {
	s := NewStore()
	for _, w := range wares {
		s.Add(w)
	}
	return s
}

func (s *Store) init() {
	if s.wares == nil {
		s.wares = make(map[Type]Amount)
	}
}

// Add credits the ledger. Adding a zero amount is a no-op.
func (s *Store) Add(w Ware) {
	if w.Amount == 0 {
		return
	}
	s.init()
	s.wares[w.Type] += w.Amount
}

// RemoveExact debits exactly w. If the ledger holds less than requested it
// returns ErrInsufficient and nothing is removed.
func (s *Store) RemoveExact(w Ware) (Ware, error) {
	if w.Amount == 0 {
		return w, nil
	}
	held := s.wares[w.Type]
	if held < w.Amount {
		return Ware{}, fmt.Errorf("remove %s (held %d): %w", w, held, ErrInsufficient)
	}
	s.deduct(w.Type, w.Amount)
	return w, nil
}

// RemoveUpTo debits min(held, requested). The input is mutated to the unmet
// remainder and the removed portion is returned. Never fails.
func (s *Store) RemoveUpTo(w *Ware) Ware {
	take := min(s.wares[w.Type], w.Amount)
	if take > 0 {
		s.deduct(w.Type, take)
	}
	w.Amount -= take
	return New(w.Type, take)
}

// RemoveBundleAtomic debits every ware in bundle, or nothing. If any type is
// short it returns ErrInsufficient and the ledger is untouched.
func (s *Store) RemoveBundleAtomic(bundle Store) (Store, error) {
	for t, amount := range bundle.wares {
		if s.wares[t] < amount {
			return Store{}, fmt.Errorf("remove bundle, %s short (held %d, want %d): %w",
				t, s.wares[t], amount, ErrInsufficient)
		}
	}
	for t, amount := range bundle.wares {
		s.deduct(t, amount)
	}
	return bundle.Clone(), nil
}

// RemoveBundleUpTo debits as much of bundle as the ledger holds,
// per-type. The input is mutated to the unmet remainder and the removed
// bundle is returned. Never fails.
func (s *Store) RemoveBundleUpTo(bundle *Store) Store {
	removed := NewStore()
	for _, t := range bundle.TypesSorted() {
		want := New(t, bundle.AmountOf(t))
		got := s.RemoveUpTo(&want)
		removed.Add(got)
		bundle.set(t, want.Amount)
	}
	return removed
}

func (s *Store) deduct(t Type, amount Amount) {
	s.set(t, s.wares[t]-amount)
}

func (s *Store) set(t Type, amount Amount) {
	s.init()
	if amount == 0 {
		delete(s.wares, t)
		return
	}
	s.wares[t] = amount
}

// AmountOf reports the held quantity of one type (zero when absent).
func (s Store) AmountOf(t Type) Amount {
	return s.wares[t]
}

// Len reports how many types the ledger currently holds.
func (s Store) Len() int {
	return len(s.wares)
}

// TypesSorted lists the held types in canonical order. Map iteration order
// must never leak into offer generation, so callers iterate via this.
func (s Store) TypesSorted() []Type {
	ts := make([]Type, 0, len(s.wares))
	for t := range s.wares {
		ts = append(ts, t)
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// Clone returns an independent copy of the ledger.
func (s Store) Clone() Store {
	c := Store{wares: make(map[Type]Amount, len(s.wares))}
	for t, amount := range s.wares {
		c.wares[t] = amount
	}
	return c
}

// Equal reports whether two ledgers hold exactly the same wares.
func (s Store) Equal(o Store) bool {
	if len(s.wares) != len(o.wares) {
		return false
	}
	for t, amount := range s.wares {
		if o.wares[t] != amount {
			return false
		}
	}
	return true
}

// String renders the ledger as a sorted list, e.g. "[10x Food, 3x Money]".
func (s Store) String() string {
	parts := make([]string, 0, len(s.wares))
	for _, t := range s.TypesSorted() {
		parts = append(parts, New(t, s.wares[t]).String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
