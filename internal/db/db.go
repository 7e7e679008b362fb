package db

import (
	"context"
	"fmt"
	"time"

	"github.com/gmkornilov/tactics-trainer/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type PuzzleDbClient struct {
	client           *mongo.Client
	PuzzleCollection *mongo.Collection
}

func (r *PuzzleDbClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func NewDbClient(cfg config.Database) (*PuzzleDbClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(cfg.Address)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", cfg.Address, err)
	}

	collection := client.Database(cfg.DatabaseName).Collection(cfg.Collection)
	if collection == nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("can't resolve collection %s", cfg.DatabaseName+"."+cfg.Collection)
	}
	return &PuzzleDbClient{client: client, PuzzleCollection: collection}, nil
}
