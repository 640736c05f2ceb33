package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/wingsengineering/wingsweb/models"
)

// MongoCatalog reads active parts from the product_catalog collection.
type MongoCatalog struct {
	col        *mongo.Collection
	categories []string
}

func NewMongoCatalog(m *Mongo, categories []string) *MongoCatalog {
	return &MongoCatalog{col: m.Collection(CollectionCatalog), categories: categories}
}

func (s *MongoCatalog) Name() string { return "mongo" }

func (s *MongoCatalog) FetchParts(ctx context.Context) ([]models.Part, error) {
	filter := bson.M{
		"status":   "active",
		"category": bson.M{"$in": s.categories},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find parts: %w", err)
	}
	defer cursor.Close(ctx)

	parts := make([]models.Part, 0)
	for cursor.Next(ctx) {
		var p models.Part
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode part: %w", err)
		}
		parts = append(parts, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}
