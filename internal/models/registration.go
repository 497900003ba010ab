package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration records that a user signed up for an event. The
// (eventId, userId) pair is unique per the compound index on the
// collection.
type Registration struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID          string             `bson:"eventId" json:"eventId"`
	UserID           string             `bson:"userId" json:"userId"`
	RegistrationDate time.Time          `bson:"registrationDate" json:"registrationDate"`
}

// CreateRegistrationRequest is the JSON body for POST /api/registrations.
type CreateRegistrationRequest struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}
