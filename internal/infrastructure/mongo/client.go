package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Connect builds a Mongo client for the given URI. A failed initial ping is
// logged but not fatal: the app runs on the in-memory store until the
// database becomes reachable, matching the degraded-start behavior of the
// rest of the system.
func Connect(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn("mongodb not reachable at startup, continuing with in-memory storage", zap.Error(err))
	} else {
		logger.Info("connected to mongodb")
	}

	return client, nil
}

// Disconnect closes the client with a bounded context.
func Disconnect(client *mongo.Client, logger *zap.Logger) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil && logger != nil {
		logger.Warn("mongodb disconnect failed", zap.Error(err))
		return
	}
	if logger != nil {
		logger.Info("mongodb connection closed")
	}
}
