package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wheeldeal/internal/listing"
	"wheeldeal/internal/listing/model"
)

func fixtureListings() []model.Listing {
	return []model.Listing{
		{ID: "1", Brand: "Toyota", Model: "Corolla", Transmission: "automatic", FuelType: "petrol", Year: 2019, Price: 15000},
		{ID: "2", Brand: "toyota", Model: "Camry", Transmission: "manual", FuelType: "hybrid", Year: 2021, Price: 28000},
		{ID: "3", Brand: "BMW", Model: "320i", Transmission: "automatic", FuelType: "petrol", Year: 2019, Price: 32000},
		{ID: "4", Brand: "Nissan", Model: "Leaf", Transmission: "automatic", FuelType: "electric", Year: 2022, Price: 24000},
	}
}

func TestFilter(t *testing.T) {
	all := fixtureListings()

	tests := []struct {
		name     string
		criteria listing.FilterCriteria
		wantIDs  []string
	}{
		{
			name:     "default criteria pass everything",
			criteria: listing.DefaultCriteria(),
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "brand is case-insensitive exact",
			criteria: listing.FilterCriteria{Brand: "TOYOTA", MaxPrice: listing.DefaultMaxPrice},
			wantIDs:  []string{"1", "2"},
		},
		{
			name:     "transmission is exact",
			criteria: listing.FilterCriteria{Transmission: "manual", MaxPrice: listing.DefaultMaxPrice},
			wantIDs:  []string{"2"},
		},
		{
			name:     "fuel type is exact",
			criteria: listing.FilterCriteria{FuelType: "petrol", MaxPrice: listing.DefaultMaxPrice},
			wantIDs:  []string{"1", "3"},
		},
		{
			name:     "year matches its decimal string form",
			criteria: listing.FilterCriteria{Year: "2019", MaxPrice: listing.DefaultMaxPrice},
			wantIDs:  []string{"1", "3"},
		},
		{
			name:     "max price is inclusive",
			criteria: listing.FilterCriteria{MaxPrice: 24000},
			wantIDs:  []string{"1", "4"},
		},
		{
			name:     "predicates are conjunctive",
			criteria: listing.FilterCriteria{Brand: "Toyota", FuelType: "petrol", MaxPrice: listing.DefaultMaxPrice},
			wantIDs:  []string{"1"},
		},
		{
			name:     "zero max price rejects everything priced above zero",
			criteria: listing.FilterCriteria{},
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.criteria)

			ids := make([]string, 0, len(got))
			for _, l := range got {
				assert.True(t, Matches(l, tt.criteria))
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			// Filtering an already-filtered sequence changes nothing.
			assert.Equal(t, got, Filter(got, tt.criteria))
		})
	}
}

func TestFilter_PreservesInputOrder(t *testing.T) {
	all := fixtureListings()
	got := Filter(all, listing.FilterCriteria{Transmission: "automatic", MaxPrice: listing.DefaultMaxPrice})

	assert.Equal(t, []string{"1", "3", "4"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	all := fixtureListings()
	_ = Filter(all, listing.FilterCriteria{Brand: "BMW", MaxPrice: listing.DefaultMaxPrice})

	assert.Equal(t, fixtureListings(), all)
}
