package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event is a document in the events collection. Date and Time are kept
// as strings so that plain calendar dates like "2025-06-15" round-trip
// exactly as submitted. CreatorID references a User by hex id.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time,omitempty" json:"time,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Price       *float64           `bson:"price,omitempty" json:"price,omitempty"`
	Capacity    *int               `bson:"capacity,omitempty" json:"capacity,omitempty"`
	CreatorID   string             `bson:"creatorId,omitempty" json:"creatorId,omitempty"`
}

// CreateEventRequest is the JSON body for POST /api/events.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	CreatorID   string   `json:"creatorId"`
}
