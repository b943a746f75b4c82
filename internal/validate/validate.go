package validate

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNumber covers every numeric-argument failure so the dispatcher can map
// all of them to one protocol error line.
var ErrNumber = errors.New("invalid number format")

// Price parses a listing price. Negative prices are rejected; listings carry
// non-negative amounts only.
func Price(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 {
		return 0, ErrNumber
	}
	return p, nil
}

// ListingID parses a decimal listing identifier.
func ListingID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNumber
	}
	return id, nil
}
