package listing

// DefaultMaxPrice is the price-slider ceiling: with no user input every
// listing at or below it passes, because the max-price bound is applied
// unconditionally.
const DefaultMaxPrice = 1_000_000

// FilterCriteria are conjunctive predicates over the cached listing set.
// Empty strings are wildcards; MaxPrice is an inclusive upper bound and
// always applies.
type FilterCriteria struct {
	Brand        string
	Transmission string
	FuelType     string
	Year         string
	MaxPrice     float64
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{MaxPrice: DefaultMaxPrice}
}
