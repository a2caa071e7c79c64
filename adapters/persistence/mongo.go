package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-service/internal/config"
	"github.com/khoahotran/profile-service/pkg/logger"
)

// NewMongoClient connects and pings the store, retrying up to
// cfg.Mongo.MaxRetries times after the first failure.
func NewMongoClient(ctx context.Context, cfg config.Config, log logger.Logger) (*mongo.Client, error) {
	var client *mongo.Client
	err := retry(ctx, cfg.Mongo.MaxRetries, cfg.Mongo.RetryInterval, log, func(ctx context.Context) error {
		c, err := mongo.Connect(options.Client().
			ApplyURI(cfg.Mongo.URI).
			SetServerSelectionTimeout(cfg.Mongo.Timeout))
		if err != nil {
			return err
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()
		if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Connect MongoDB successfully.", zap.String("database", cfg.Mongo.Database))
	return client, nil
}

// retry runs op once, then up to maxRetries more times, sleeping interval
// between attempts.
func retry(ctx context.Context, maxRetries int, interval time.Duration, log logger.Logger, op func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = op(ctx); err == nil {
			return nil
		}
		log.Error("MongoDB connection error", err)
		if attempt >= maxRetries {
			break
		}

		log.Info("Retrying MongoDB connection",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
			zap.Duration("interval", interval))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("max retries reached connecting to MongoDB: %w", err)
}

// DisconnectMongo closes client within timeout.
func DisconnectMongo(client *mongo.Client, timeout time.Duration, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error("Error disconnecting from MongoDB", err)
		return
	}
	log.Info("MongoDB connection closed")
}
