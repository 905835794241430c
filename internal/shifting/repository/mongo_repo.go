package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/error7buddy/KiLagbe.Com/internal/shifting/domain"
	mongostore "github.com/error7buddy/KiLagbe.Com/internal/storage/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone"`
	FromLocation string             `bson:"from_location"`
	FromFloor    string             `bson:"from_floor"`
	ToLocation   string             `bson:"to_location"`
	ToFloor      string             `bson:"to_floor"`
	ShiftType    string             `bson:"shift_type"`
	Date         string             `bson:"date"`
	Message      string             `bson:"message"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type MongoRepository struct {
	orders *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{orders: db.Collection(mongostore.ColShiftingOrders)}
}

func (r *MongoRepository) List(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	doc := orderDocument{
		Name:         order.Name,
		Phone:        order.Phone,
		FromLocation: order.FromLocation,
		FromFloor:    order.FromFloor,
		ToLocation:   order.ToLocation,
		ToFloor:      order.ToFloor,
		ShiftType:    order.ShiftType,
		Date:         order.Date,
		Message:      order.Message,
		Status:       string(order.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.orders.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	*order = doc.toDomain()
	return nil
}

func (r *MongoRepository) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var doc orderDocument
	err = r.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	order := doc.toDomain()
	return &order, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (d orderDocument) toDomain() domain.Order {
	status := domain.Status(d.Status)
	if status == "" {
		status = domain.StatusPending
	}
	return domain.Order{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Phone:        d.Phone,
		FromLocation: d.FromLocation,
		FromFloor:    d.FromFloor,
		ToLocation:   d.ToLocation,
		ToFloor:      d.ToFloor,
		ShiftType:    d.ShiftType,
		Date:         d.Date,
		Message:      d.Message,
		Status:       status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
