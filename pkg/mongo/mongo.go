package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config describes an optional MongoDB connection. An empty URI disables it.
type Config struct {
	URI            string `split_words:"true"`
	Database       string `split_words:"true" default:"questionnaire"`
	ConnectTimeout int    `split_words:"true" default:"10"`
}

// Enabled reports whether a connection URI was configured.
func (c *Config) Enabled() bool {
	return c.URI != ""
}

// New connects, pings the primary and returns the configured database.
func (c *Config) New(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(time.Duration(c.ConnectTimeout) * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(c.ConnectTimeout)*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return client, client.Database(c.Database), nil
}
