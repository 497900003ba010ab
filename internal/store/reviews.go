package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventhub/backend/internal/models"
)

// ReviewStore handles review document CRUD in MongoDB.
type ReviewStore struct {
	col *mongo.Collection
}

func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{col: db.Collection("reviews")}
}

func (s *ReviewStore) Create(ctx context.Context, rev *models.Review) (*models.Review, error) {
	rev.Date = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, rev)
	if err != nil {
		return nil, wrapWrite(err)
	}
	rev.ID = res.InsertedID.(primitive.ObjectID)
	return rev, nil
}

func (s *ReviewStore) ListByEvent(ctx context.Context, eventID string) ([]models.Review, error) {
	cur, err := s.col.Find(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var rev models.Review
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rev); err != nil {
		return nil, wrapRead(err)
	}
	return &rev, nil
}

// FindPair looks up a review by its (eventId, userId) pair, optionally
// excluding one record by id. Returns ErrNotFound when the pair is free.
func (s *ReviewStore) FindPair(ctx context.Context, eventID, userID, excludeID string) (*models.Review, error) {
	filter := bson.M{"eventId": eventID, "userId": userID}
	if excludeID != "" {
		oid, err := objectID(excludeID)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}
	var rev models.Review
	if err := s.col.FindOne(ctx, filter).Decode(&rev); err != nil {
		return nil, wrapRead(err)
	}
	return &rev, nil
}

func (s *ReviewStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Review, error) {
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rev models.Review
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&rev)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWrite(err)
		}
		return nil, wrapRead(err)
	}
	return &rev, nil
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
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
