package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientName     string             `bson:"patientName" json:"patientName"`
	PatientEmail    string             `bson:"patientEmail" json:"patientEmail"`
	PatientPhone    string             `bson:"patientPhone" json:"patientPhone"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"` // free text, e.g. "10:30 AM"
	Doctor          string             `bson:"doctor" json:"doctor"`
	Department      string             `bson:"department" json:"department"`
	Reason          string             `bson:"reason" json:"reason"`
	Notes           string             `bson:"notes" json:"notes"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsValidAppointmentStatus reports whether s is an allowed appointment status.
func IsValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// FormattedDate renders the appointment date as a long US date.
func (a Appointment) FormattedDate() string {
	return a.AppointmentDate.Format("January 2, 2006")
}

// MarshalJSON adds the derived display fields. They are computed on read and
// never persisted.
func (a Appointment) MarshalJSON() ([]byte, error) {
	type alias Appointment
	return json.Marshal(struct {
		alias
		FormattedDate string `json:"formattedDate"`
		FormattedTime string `json:"formattedTime"`
	}{
		alias:         alias(a),
		FormattedDate: a.FormattedDate(),
		FormattedTime: a.AppointmentTime,
	})
}
