package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Sentinel errors shared by every entity store. Handlers branch on
// these with errors.Is and map them to status codes; ErrInvalidID is
// raised for any id that is not a 24-char ObjectID hex string, so the
// malformed-identifier case is detected in one place.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
	ErrDuplicate = errors.New("duplicate")
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the application relies on:
// users.email, and the (eventId, userId) pairs for registrations and
// reviews. The store, not the controllers, is the source of truth for
// these invariants under concurrent writers.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	if _, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "googleId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	pair := bson.D{{Key: "eventId", Value: 1}, {Key: "userId", Value: 1}}
	if _, err := db.Collection("registrations").Indexes().CreateOne(ctx, mongo.IndexModel{Keys: pair, Options: unique}); err != nil {
		return fmt.Errorf("registrations index: %w", err)
	}
	if _, err := db.Collection("reviews").Indexes().CreateOne(ctx, mongo.IndexModel{Keys: pair, Options: unique}); err != nil {
		return fmt.Errorf("reviews index: %w", err)
	}
	return nil
}

// objectID parses a hex id, mapping parse failures to ErrInvalidID.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// wrapWrite translates driver write errors into store sentinels.
func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// wrapRead translates single-document read errors into store sentinels.
func wrapRead(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
