package model

import (
	"time"

	"wheeldeal/internal/backend"
)

// Listing is one car advertisement. Photo references keep upload order.
type Listing struct {
	ID               string
	OwnerID          string
	Condition        string
	Year             int
	Brand            string
	Model            string
	Transmission     string
	Color            string
	EngineSize       float64
	FuelType         string
	MileageRating    string
	Odometer         int
	AccidentCount    int
	SeatCount        int
	LastInspection   string
	OwnershipHistory string
	Location         string
	Price            float64
	Negotiable       bool
	PhotoURLs        []string
	Description      string
	CreatedAt        time.Time
}

func FromDocument(d backend.Document) Listing {
	return Listing{
		ID:               d.ID(),
		OwnerID:          d.String("ownerId"),
		Condition:        d.String("condition"),
		Year:             d.Int("year"),
		Brand:            d.String("brand"),
		Model:            d.String("model"),
		Transmission:     d.String("transmission"),
		Color:            d.String("color"),
		EngineSize:       d.Float("engineSize"),
		FuelType:         d.String("fuelType"),
		MileageRating:    d.String("mileageRating"),
		Odometer:         d.Int("odometer"),
		AccidentCount:    d.Int("accidentCount"),
		SeatCount:        d.Int("seatCount"),
		LastInspection:   d.String("lastInspection"),
		OwnershipHistory: d.String("ownershipHistory"),
		Location:         d.String("location"),
		Price:            d.Float("price"),
		Negotiable:       d.Bool("negotiable"),
		PhotoURLs:        d.Strings("photoUrls"),
		Description:      d.String("description"),
		CreatedAt:        d.Time("createdAt"),
	}
}

func (l Listing) Document() backend.Document {
	doc := backend.Document{
		"ownerId":          l.OwnerID,
		"condition":        l.Condition,
		"year":             l.Year,
		"brand":            l.Brand,
		"model":            l.Model,
		"transmission":     l.Transmission,
		"color":            l.Color,
		"engineSize":       l.EngineSize,
		"fuelType":         l.FuelType,
		"mileageRating":    l.MileageRating,
		"odometer":         l.Odometer,
		"accidentCount":    l.AccidentCount,
		"seatCount":        l.SeatCount,
		"lastInspection":   l.LastInspection,
		"ownershipHistory": l.OwnershipHistory,
		"location":         l.Location,
		"price":            l.Price,
		"negotiable":       l.Negotiable,
		"photoUrls":        l.PhotoURLs,
		"description":      l.Description,
	}
	if l.ID != "" {
		doc["id"] = l.ID
	}
	if !l.CreatedAt.IsZero() {
		doc["createdAt"] = l.CreatedAt
	}
	return doc
}
