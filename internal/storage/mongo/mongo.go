// Package mongo owns the process-wide MongoDB connection and collection layout.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ColAdvertisements  = "advertisements"
	ColShiftingOrders  = "shiftingorders"
	ColUsers           = "users"
	ColAdQuotas        = "ad_quotas"
	defaultPingTimeout = 2 * time.Second
)

type Options struct {
	URI       string
	Database  string
	ConnectTO time.Duration
}

// Store wraps one client shared by every repository.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func Connect(ctx context.Context, opt Options) (*Store, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 10 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(opt.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	s := &Store{Client: client, DB: client.Database(opt.Database)}
	if err := s.Ping(cctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	if err := EnsureIndexes(cctx, s.DB); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	pctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if err := s.Client.Ping(pctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique index
// on users.firebaseUid enforces one user per external identity.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		ColAdvertisements: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		ColShiftingOrders: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		ColUsers: {
			{Keys: bson.D{{Key: "firebaseUid", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}
