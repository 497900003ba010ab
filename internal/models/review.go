package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a 1-5 star rating with an optional comment. A user may
// review a given event at most once.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID string             `bson:"eventId" json:"eventId"`
	UserID  string             `bson:"userId" json:"userId"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Date    time.Time          `bson:"date" json:"date"`
}

// CreateReviewRequest is the JSON body for POST /api/reviews. Rating is
// decoded as a float so that non-integral values reach the handler's
// range check instead of failing JSON decoding.
type CreateReviewRequest struct {
	EventID string  `json:"eventId"`
	UserID  string  `json:"userId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
