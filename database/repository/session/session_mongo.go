package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mentorly/database"
	"mentorly/models"
)

// ErrNotFound is returned when no session matches the lookup.
var ErrNotFound = errors.New("session not found")

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database("mentorly")
	return &MongoSessionRepo{coll: db.Collection("sessions")}
}

func (repo *MongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching session with id %s: %w", id, err)
	}
	return &session, nil
}

func (repo *MongoSessionRepo) Create(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("error creating session: %w", err)
	}
	return nil
}

func (repo *MongoSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating session %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
