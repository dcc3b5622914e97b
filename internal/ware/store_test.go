package ware

import (
	"errors"
	"testing"
)

func TestAddAndRemoveExactConserve(t *testing.T) {
	s := NewStore()
	s.Add(New(Food, 10))
	s.Add(New(Food, 5))
	s.Add(New(Money, 3))

	if got := s.AmountOf(Food); got != 15 {
		t.Fatalf("Food = %d, want 15", got)
	}

	if _, err := s.RemoveExact(New(Food, 6)); err != nil {
		t.Fatalf("RemoveExact: %v", err)
	}
	if got := s.AmountOf(Food); got != 9 {
		t.Fatalf("Food after removal = %d, want 9", got)
	}
	if got := s.AmountOf(Money); got != 3 {
		t.Fatalf("Money untouched = %d, want 3", got)
	}
}

func TestRemoveExactInsufficientLeavesLedger(t *testing.T) {
	s := StoreOf(New(Water, 2))
	before := s.Clone()

	_, err := s.RemoveExact(New(Water, 3))
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("err = %v, want ErrInsufficient", err)
	}
	if !s.Equal(before) {
		t.Fatalf("ledger mutated on failed removal: %s != %s", s, before)
	}
}

func TestAddZeroAmountIsNoOp(t *testing.T) {
	s := NewStore()
	s.Add(New(Food, 0))
	if s.Len() != 0 {
		t.Fatalf("zero-amount add created a key: %s", s)
	}
}

func TestNoZeroKeysAfterDrain(t *testing.T) {
	s := StoreOf(New(Soil, 4))
	if _, err := s.RemoveExact(New(Soil, 4)); err != nil {
		t.Fatalf("RemoveExact: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("drained type still present: %s", s)
	}

	s.Add(New(Soil, 2))
	want := New(Soil, 5)
	s.RemoveUpTo(&want)
	if s.Len() != 0 {
		t.Fatalf("RemoveUpTo left a zero key: %s", s)
	}
}

func TestRemoveUpTo(t *testing.T) {
	s := StoreOf(New(Food, 3))

	want := New(Food, 10)
	got := s.RemoveUpTo(&want)

	if got.Amount != 3 {
		t.Fatalf("removed %d, want 3", got.Amount)
	}
	if want.Amount != 7 {
		t.Fatalf("unmet remainder = %d, want 7", want.Amount)
	}
	if s.AmountOf(Food) != 0 {
		t.Fatalf("ledger should be empty, has %d Food", s.AmountOf(Food))
	}

	// Fully satisfiable request.
	s = StoreOf(New(Food, 10))
	want = New(Food, 4)
	got = s.RemoveUpTo(&want)
	if got.Amount != 4 || want.Amount != 0 || s.AmountOf(Food) != 6 {
		t.Fatalf("got %d, unmet %d, held %d; want 4, 0, 6", got.Amount, want.Amount, s.AmountOf(Food))
	}
}

func TestRemoveBundleAtomicFailureIsUntouched(t *testing.T) {
	s := StoreOf(New(Food, 5), New(Water, 1), New(Money, 20))
	before := s.Clone()

	bundle := StoreOf(New(Food, 2), New(Water, 2)) // Water is short
	_, err := s.RemoveBundleAtomic(bundle)
	if !errors.Is(err, ErrInsufficient) {
		t.Fatalf("err = %v, want ErrInsufficient", err)
	}
	if !s.Equal(before) {
		t.Fatalf("ledger mutated on failed bundle: %s != %s", s, before)
	}
}

func TestRemoveBundleAtomicSuccess(t *testing.T) {
	s := StoreOf(New(Food, 5), New(Water, 2))

	removed, err := s.RemoveBundleAtomic(StoreOf(New(Food, 2), New(Water, 2)))
	if err != nil {
		t.Fatalf("RemoveBundleAtomic: %v", err)
	}
	if !removed.Equal(StoreOf(New(Food, 2), New(Water, 2))) {
		t.Fatalf("removed = %s", removed)
	}
	if !s.Equal(StoreOf(New(Food, 3))) {
		t.Fatalf("remaining = %s, want [3x Food]", s)
	}
}

func TestRemoveBundleUpToPartitions(t *testing.T) {
	inventory := StoreOf(New(Food, 10), New(Money, 50))
	demand := StoreOf(New(Food, 3), New(Water, 2))

	removed := inventory.RemoveBundleUpTo(&demand)

	// removed + remaining inventory = original inventory.
	if !removed.Equal(StoreOf(New(Food, 3))) {
		t.Fatalf("removed = %s, want [3x Food]", removed)
	}
	if !inventory.Equal(StoreOf(New(Food, 7), New(Money, 50))) {
		t.Fatalf("inventory = %s", inventory)
	}
	// removed + unmet = original demand.
	if !demand.Equal(StoreOf(New(Water, 2))) {
		t.Fatalf("unmet = %s, want [2x Water]", demand)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := StoreOf(New(Food, 1))
	c := s.Clone()
	c.Add(New(Food, 9))
	if s.AmountOf(Food) != 1 {
		t.Fatalf("clone aliases original: %s", s)
	}
}
