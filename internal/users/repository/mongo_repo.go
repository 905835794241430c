package repository

import (
	"context"
	"fmt"
	"time"

	mongostore "github.com/error7buddy/KiLagbe.Com/internal/storage/mongo"
	"github.com/error7buddy/KiLagbe.Com/internal/users/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FirebaseUID    string             `bson:"firebaseUid"`
	Email          string             `bson:"email,omitempty"`
	TotalAdsPosted int                `bson:"totalAdsPosted"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

type MongoRepository struct {
	users *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{users: db.Collection(mongostore.ColUsers)}
}

// FindOrCreate upserts with $setOnInsert so an existing record is never
// modified. The unique index on firebaseUid settles concurrent inserts.
func (r *MongoRepository) FindOrCreate(ctx context.Context, firebaseUID, email string) (*domain.User, bool, error) {
	insert := bson.M{
		"firebaseUid":    firebaseUID,
		"totalAdsPosted": 0,
		"createdAt":      time.Now().UTC(),
	}
	if email != "" {
		insert["email"] = email
	}

	res, err := r.users.UpdateOne(ctx,
		bson.M{"firebaseUid": firebaseUID},
		bson.M{"$setOnInsert": insert},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	created := err == nil && res.UpsertedCount > 0

	var doc userDocument
	if err := r.users.FindOne(ctx, bson.M{"firebaseUid": firebaseUID}).Decode(&doc); err != nil {
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	return &domain.User{
		ID:             doc.ID.Hex(),
		FirebaseUID:    doc.FirebaseUID,
		Email:          doc.Email,
		TotalAdsPosted: doc.TotalAdsPosted,
		CreatedAt:      doc.CreatedAt,
	}, created, nil
}
