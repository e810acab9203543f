package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	StatusRegistered = "registered"
	StatusPending    = "pending"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
)

// Address is the postal address captured at signup. All five parts are
// required together.
type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	CountryCode string             `bson:"countryCode" json:"countryCode"`
	DateOfBirth time.Time          `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender      string             `bson:"gender" json:"gender"` // male, female, other, prefer-not-to-say
	Address     Address            `bson:"address" json:"address"`
	Password    string             `bson:"password,omitempty" json:"-"` // bcrypt hash, never serialized
	Role        string             `bson:"role" json:"role"`
	Status      string             `bson:"status" json:"status"`
	SignupTime  time.Time          `bson:"signupTime" json:"signupTime"`
}

// IsValidUserStatus reports whether s is one of the allowed account statuses.
func IsValidUserStatus(s string) bool {
	switch s {
	case StatusRegistered, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Summary is the trimmed view returned by login and token verification.
func (u *User) Summary() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"role":      u.Role,
		"status":    u.Status,
	}
}
