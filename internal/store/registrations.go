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

// RegistrationStore handles registration document CRUD in MongoDB. The
// unique (eventId, userId) index is the authority on duplicates; the
// FindPair pre-check exists only to give callers the friendlier 409
// path before attempting a write.
type RegistrationStore struct {
	col *mongo.Collection
}

func NewRegistrationStore(db *mongo.Database) *RegistrationStore {
	return &RegistrationStore{col: db.Collection("registrations")}
}

func (s *RegistrationStore) Create(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	reg.RegistrationDate = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, reg)
	if err != nil {
		return nil, wrapWrite(err)
	}
	reg.ID = res.InsertedID.(primitive.ObjectID)
	return reg, nil
}

func (s *RegistrationStore) ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	cur, err := s.col.Find(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	regs := []models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *RegistrationStore) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var reg models.Registration
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&reg); err != nil {
		return nil, wrapRead(err)
	}
	return &reg, nil
}

// FindPair looks up a registration by its (eventId, userId) pair,
// optionally excluding one record by id (used when updating a record so
// it does not collide with itself). Returns ErrNotFound when the pair
// is free.
func (s *RegistrationStore) FindPair(ctx context.Context, eventID, userID, excludeID string) (*models.Registration, error) {
	filter := bson.M{"eventId": eventID, "userId": userID}
	if excludeID != "" {
		oid, err := objectID(excludeID)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$ne": oid}
	}
	var reg models.Registration
	if err := s.col.FindOne(ctx, filter).Decode(&reg); err != nil {
		return nil, wrapRead(err)
	}
	return &reg, nil
}

func (s *RegistrationStore) Update(ctx context.Context, id string, fields map[string]any) (*models.Registration, error) {
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reg models.Registration
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&reg)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, wrapWrite(err)
		}
		return nil, wrapRead(err)
	}
	return &reg, nil
}

func (s *RegistrationStore) Delete(ctx context.Context, id string) error {
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
