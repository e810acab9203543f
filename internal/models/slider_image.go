package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SliderImage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image" json:"image"`
	Link        string             `bson:"link,omitempty" json:"link,omitempty"`
	ButtonText  string             `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
