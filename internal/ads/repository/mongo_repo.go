package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/error7buddy/KiLagbe.Com/internal/ads/domain"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
	mongostore "github.com/error7buddy/KiLagbe.Com/internal/storage/mongo"
)

// quotaSettleAfter is how long a counter must be untouched before it may be
// lowered to the live ad count. Inserts behind a fresh reservation finish well
// within it.
const quotaSettleAfter = time.Minute

type addressDocument struct {
	HouseNo  string `bson:"houseNo"`
	Area     string `bson:"area"`
	District string `bson:"district"`
	Phone    string `bson:"phone"`
}

type adDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	BHK         string             `bson:"bhk"`
	Address     addressDocument    `bson:"address"`
	Images      []string           `bson:"images"`
	IsPaid      bool               `bson:"isPaid"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// MongoRepository stores ads in the advertisements collection and keeps a
// per-owner counter document in ad_quotas that guards the free-ad limit.
type MongoRepository struct {
	ads    *mongo.Collection
	quotas *mongo.Collection
	log    logrus.FieldLogger
}

type quotaDocument struct {
	Owner     string    `bson:"_id"`
	Count     int64     `bson:"count"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoRepository(db *mongo.Database, log logrus.FieldLogger) *MongoRepository {
	return &MongoRepository{
		ads:    db.Collection(mongostore.ColAdvertisements),
		quotas: db.Collection(mongostore.ColAdQuotas),
		log:    log.WithField("component", "ads.mongo"),
	}
}

func (r *MongoRepository) List(ctx context.Context, ownerID string) ([]domain.Ad, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["userId"] = ownerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.ads.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find ads: %w", err)
	}

	var docs []adDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode ads: %w", err)
	}

	out := make([]domain.Ad, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdNotFound
	}

	var doc adDocument
	err = r.ads.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ad: %w", err)
	}

	ad := doc.toDomain()
	return &ad, nil
}

// CreateWithinLimit reserves a slot with a compare-and-swap increment on the
// owner's counter (count < limit) and only then inserts the ad. A counter that
// is full but higher than the live ad count is settled once and retried.
func (r *MongoRepository) CreateWithinLimit(ctx context.Context, ad *domain.Ad, limit int) error {
	if err := r.seedQuota(ctx, ad.UserID); err != nil {
		return err
	}

	ok, err := r.reserveQuota(ctx, ad.UserID, limit)
	if err != nil {
		return err
	}
	if !ok {
		settled, err := r.settleQuota(ctx, ad.UserID, limit)
		if err != nil {
			return err
		}
		if settled {
			ok, err = r.reserveQuota(ctx, ad.UserID, limit)
			if err != nil {
				return err
			}
		}
	}
	if !ok {
		return domain.ErrQuotaReached
	}

	now := time.Now().UTC()
	doc := fromDomain(ad)
	doc.ID = primitive.NilObjectID
	doc.IsPaid = false
	doc.CreatedAt = now
	doc.UpdatedAt = now

	ins, err := r.ads.InsertOne(ctx, doc)
	if err != nil {
		r.releaseQuota(ctx, ad.UserID)
		return fmt.Errorf("insert ad: %w", err)
	}

	if oid, ok := ins.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	*ad = doc.toDomain()
	return nil
}

// seedQuota creates the counter from the live ad count the first time an owner
// is seen, so ads written before the counter existed are still counted.
func (r *MongoRepository) seedQuota(ctx context.Context, ownerID string) error {
	err := r.quotas.FindOne(ctx, bson.M{"_id": ownerID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("find ad quota: %w", err)
	}

	n, err := r.CountByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	_, err = r.quotas.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$setOnInsert": bson.M{"count": n, "updatedAt": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed ad quota: %w", err)
	}
	return nil
}

func (r *MongoRepository) reserveQuota(ctx context.Context, ownerID string, limit int) (bool, error) {
	res, err := r.quotas.UpdateOne(ctx,
		bson.M{"_id": ownerID, "count": bson.M{"$lt": limit}},
		bson.M{
			"$inc": bson.M{"count": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("reserve ad quota: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// settleQuota lowers a full counter to the live ad count when the two disagree
// and the counter has not moved for quotaSettleAfter. It reports whether the
// counter was changed.
func (r *MongoRepository) settleQuota(ctx context.Context, ownerID string, limit int) (bool, error) {
	var q quotaDocument
	err := r.quotas.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find ad quota: %w", err)
	}

	n, err := r.CountByOwner(ctx, ownerID)
	if err != nil {
		return false, err
	}
	if n >= int64(limit) || n >= q.Count {
		return false, nil
	}

	now := time.Now().UTC()
	res, err := r.quotas.UpdateOne(ctx,
		bson.M{
			"_id":       ownerID,
			"count":     q.Count,
			"updatedAt": bson.M{"$not": bson.M{"$gte": now.Add(-quotaSettleAfter)}},
		},
		bson.M{"$set": bson.M{"count": n, "updatedAt": now}},
	)
	if err != nil {
		return false, fmt.Errorf("settle ad quota: %w", err)
	}
	if res.ModifiedCount == 0 {
		return false, nil
	}

	logger.FromContext(ctx, r.log).WithFields(logrus.Fields{
		"user_id": ownerID,
		"from":    q.Count,
		"to":      n,
	}).Warn("ad quota counter settled to live count")
	return true, nil
}

// releaseQuota gives a slot back. It runs even if ctx was cancelled after the
// ad write it follows.
func (r *MongoRepository) releaseQuota(ctx context.Context, ownerID string) {
	_, err := r.quotas.UpdateOne(context.WithoutCancel(ctx),
		bson.M{"_id": ownerID, "count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"count": -1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		logger.FromContext(ctx, r.log).WithError(err).WithField("user_id", ownerID).Error("failed to release ad quota")
	}
}

func (r *MongoRepository) Update(ctx context.Context, id string, req domain.UpdateAdRequest) (*domain.Ad, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAdNotFound
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	setIfPresent(set, "title", req.Title)
	setIfPresent(set, "description", req.Description)
	setIfPresent(set, "bhk", req.BHK)
	setIfPresent(set, "address.houseNo", req.HouseNo)
	setIfPresent(set, "address.area", req.Area)
	setIfPresent(set, "address.district", req.District)
	setIfPresent(set, "address.phone", req.Phone)
	if len(req.Images) > 0 {
		set["images"] = req.Images
	}

	var doc adDocument
	err = r.ads.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrAdNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update ad: %w", err)
	}

	ad := doc.toDomain()
	return &ad, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAdNotFound
	}

	var doc adDocument
	err = r.ads.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrAdNotFound
	}
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}

	r.releaseQuota(ctx, doc.UserID)
	return nil
}

func (r *MongoRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	n, err := r.ads.CountDocuments(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return 0, fmt.Errorf("count ads: %w", err)
	}
	return n, nil
}

// ReconcileQuotas repairs counters left too high by a create that reserved a
// slot but never inserted. Each correction is conditional on the counter being
// unchanged since it was read.
func (r *MongoRepository) ReconcileQuotas(ctx context.Context) (int, error) {
	cur, err := r.quotas.Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("find ad quotas: %w", err)
	}

	var quotas []quotaDocument
	if err := cur.All(ctx, &quotas); err != nil {
		return 0, fmt.Errorf("decode ad quotas: %w", err)
	}

	fixed := 0
	for _, q := range quotas {
		n, err := r.CountByOwner(ctx, q.Owner)
		if err != nil {
			return fixed, err
		}
		if n == q.Count {
			continue
		}

		res, err := r.quotas.UpdateOne(ctx,
			bson.M{"_id": q.Owner, "count": q.Count},
			bson.M{"$set": bson.M{"count": n, "updatedAt": time.Now().UTC()}},
		)
		if err != nil {
			return fixed, fmt.Errorf("reset ad quota: %w", err)
		}
		fixed += int(res.ModifiedCount)
	}
	return fixed, nil
}

func setIfPresent(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func fromDomain(ad *domain.Ad) adDocument {
	images := ad.Images
	if images == nil {
		images = []string{}
	}
	return adDocument{
		UserID:      ad.UserID,
		Title:       ad.Title,
		Description: ad.Description,
		BHK:         ad.BHK,
		Address: addressDocument{
			HouseNo:  ad.Address.HouseNo,
			Area:     ad.Address.Area,
			District: ad.Address.District,
			Phone:    ad.Address.Phone,
		},
		Images:    images,
		IsPaid:    ad.IsPaid,
		CreatedAt: ad.CreatedAt,
		UpdatedAt: ad.UpdatedAt,
	}
}

func (d adDocument) toDomain() domain.Ad {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return domain.Ad{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		BHK:         d.BHK,
		Address: domain.Address{
			HouseNo:  d.Address.HouseNo,
			Area:     d.Address.Area,
			District: d.Address.District,
			Phone:    d.Address.Phone,
		},
		Images:    images,
		IsPaid:    d.IsPaid,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
