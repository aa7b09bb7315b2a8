package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/homecare-scheduler/internal/models"
)

type ActivityStore struct {
	coll *mongo.Collection
}

func NewActivityStore(db *mongo.Database) *ActivityStore {
	return &ActivityStore{coll: db.Collection("activity")}
}

func (s *ActivityStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("activity index: %w", err)
	}
	return nil
}

func (s *ActivityStore) Insert(ctx context.Context, a *models.Activity) error {
	if _, err := s.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListByTeam returns up to limit events of teamID, newest first.
func (s *ActivityStore) ListByTeam(ctx context.Context, teamID string, limit int64) ([]models.Activity, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.coll.Find(ctx, bson.M{"teamId": teamID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find activity: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]models.Activity, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	return events, nil
}
