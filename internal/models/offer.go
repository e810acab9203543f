package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var OfferCategories = []string{"consultation", "treatment", "package", "checkup", "other"}

type Offer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice *float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	ValidUntil    *time.Time         `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
	Features      []string           `bson:"features" json:"features"`
	Terms         string             `bson:"terms,omitempty" json:"terms,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidOfferCategory reports whether c is one of the known categories.
func IsValidOfferCategory(c string) bool {
	for _, cat := range OfferCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// DiscountPercentage derives the rounded discount from the price pair. Zero
// when there is no original price or no actual discount.
func (o Offer) DiscountPercentage() int {
	if o.OriginalPrice != nil && o.Price < *o.OriginalPrice {
		return int(math.Round((*o.OriginalPrice - o.Price) / *o.OriginalPrice * 100))
	}
	return 0
}

// FormattedPrice renders the price as a dollar amount.
func (o Offer) FormattedPrice() string {
	return fmt.Sprintf("$%.2f", o.Price)
}

// FormattedOriginalPrice renders the original price, or nil when unset.
func (o Offer) FormattedOriginalPrice() *string {
	if o.OriginalPrice == nil {
		return nil
	}
	s := fmt.Sprintf("$%.2f", *o.OriginalPrice)
	return &s
}

// MarshalJSON adds the derived pricing fields, computed on read so they can
// never drift from the stored price pair.
func (o Offer) MarshalJSON() ([]byte, error) {
	type alias Offer
	return json.Marshal(struct {
		alias
		DiscountPercentage     int     `json:"discountPercentage"`
		FormattedPrice         string  `json:"formattedPrice"`
		FormattedOriginalPrice *string `json:"formattedOriginalPrice,omitempty"`
	}{
		alias:                  alias(o),
		DiscountPercentage:     o.DiscountPercentage(),
		FormattedPrice:         o.FormattedPrice(),
		FormattedOriginalPrice: o.FormattedOriginalPrice(),
	})
}
