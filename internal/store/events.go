package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventhub/backend/internal/models"
)

// EventStore handles event document CRUD in MongoDB.
type EventStore struct {
	col *mongo.Collection
}

func NewEventStore(db *mongo.Database) *EventStore {
	return &EventStore{col: db.Collection("events")}
}

func (s *EventStore) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	res, err := s.col.InsertOne(ctx, e)
	if err != nil {
		return nil, wrapWrite(err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return e, nil
}

func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var e models.Event
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		return nil, wrapRead(err)
	}
	return &e, nil
}

func (s *EventStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Event, error) {
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Event
	if err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&e); err != nil {
		return nil, wrapRead(err)
	}
	return &e, nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
