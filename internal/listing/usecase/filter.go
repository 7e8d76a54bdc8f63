package usecase

import (
	"strconv"
	"strings"

	"wheeldeal/internal/listing"
	"wheeldeal/internal/listing/model"
)

// Filter is a pure function over a listing sequence. All predicates are
// conjunctive; empty-string criteria are wildcards except the max-price
// bound, which applies unconditionally. Idempotent by construction.
func Filter(listings []model.Listing, c listing.FilterCriteria) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func Matches(l model.Listing, c listing.FilterCriteria) bool {
	if c.Brand != "" && !strings.EqualFold(l.Brand, c.Brand) {
		return false
	}
	if c.Transmission != "" && l.Transmission != c.Transmission {
		return false
	}
	if c.FuelType != "" && l.FuelType != c.FuelType {
		return false
	}
	if c.Year != "" && strconv.Itoa(l.Year) != c.Year {
		return false
	}
	return l.Price <= c.MaxPrice
}
