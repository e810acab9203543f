package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		original *float64
		want     int
	}{
		{"third off rounds to 33", 100, f(150), 33},
		{"half off", 50, f(100), 50},
		{"no original price", 100, nil, 0},
		{"original equals price", 100, f(100), 0},
		{"original below price", 100, f(80), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Offer{Price: tt.price, OriginalPrice: tt.original}
			assert.Equal(t, tt.want, o.DiscountPercentage())
		})
	}
}

func f(v float64) *float64 { return &v }

func TestOfferJSONCarriesDerivedFields(t *testing.T) {
	o := Offer{Title: "Checkup", Price: 100, OriginalPrice: f(150)}
	b, err := json.Marshal(o)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, float64(33), out["discountPercentage"])
	assert.Equal(t, "$100.00", out["formattedPrice"])
	assert.Equal(t, "$150.00", out["formattedOriginalPrice"])
}

func TestOfferJSONOmitsOriginalPriceWhenUnset(t *testing.T) {
	o := Offer{Title: "Checkup", Price: 100}
	b, err := json.Marshal(o)
	assert.NoError(t, err)

	var out map[string]any
	assert.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, float64(0), out["discountPercentage"])
	_, ok := out["formattedOriginalPrice"]
	assert.False(t, ok)
}

func TestStatusValidators(t *testing.T) {
	assert.True(t, IsValidUserStatus("approved"))
	assert.False(t, IsValidUserStatus("banned"))
	assert.True(t, IsValidAppointmentStatus("cancelled"))
	assert.False(t, IsValidAppointmentStatus("done"))
	assert.True(t, IsValidOfferCategory("treatment"))
	assert.False(t, IsValidOfferCategory("surgery"))
}
