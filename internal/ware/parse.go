package ware

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads a ware from the notation "{amount}x {Type}", e.g. "4x Money"
// or "3xSoil". Whitespace around the type is ignored; "3 x Money" is not
// accepted.
func Parse(s string) (Ware, error) {
	s = strings.TrimSpace(s)
	x := strings.IndexByte(s, 'x')
	if x < 0 {
		return Ware{}, fmt.Errorf("ware %q: amount delimiter 'x' not found", s)
	}
	amount, err := strconv.ParseUint(s[:x], 10, 64)
	if err != nil {
		return Ware{}, fmt.Errorf("ware %q: bad amount %q", s, s[:x])
	}
	t, err := ParseType(strings.TrimSpace(s[x+1:]))
	if err != nil {
		return Ware{}, fmt.Errorf("ware %q: %w", s, err)
	}
	return New(t, Amount(amount)), nil
}

// ParseType reads a ware type by name.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if s == t.String() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown ware type %q", s)
}
