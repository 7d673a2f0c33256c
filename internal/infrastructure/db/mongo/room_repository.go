package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/innstack/hotel-ops/internal/core/domain"
	"github.com/innstack/hotel-ops/internal/core/ports"
)

const roomCollection = "rooms"

// MongoRoomRepository persists room inventory. A unique index on
// hotel_id+number backs the duplicate check.
type MongoRoomRepository struct {
	coll *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *MongoRoomRepository {
	return &MongoRoomRepository{coll: db.Collection(roomCollection)}
}

func (r *MongoRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRoomExists
		}
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (r *MongoRoomRepository) FindByNumber(ctx context.Context, hotelID, number string) (*domain.Room, error) {
	var room domain.Room
	filter := bson.M{"hotel_id": hotelID, "number": number}
	if err := r.coll.FindOne(ctx, filter).Decode(&room); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &room, nil
}

func (r *MongoRoomRepository) UpdateStatus(ctx context.Context, hotelID, number string, status domain.RoomStatus, notes string) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"hotel_id": hotelID, "number": number},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update room status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *MongoRoomRepository) List(ctx context.Context, filter ports.ListRoomsFilter) ([]*domain.Room, int64, error) {
	query := bson.M{"hotel_id": filter.HotelID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Floor != 0 {
		query["floor"] = filter.Floor
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"number": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"type": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count rooms: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "number", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms: %w", err)
	}
	defer cur.Close(ctx)

	var rooms []*domain.Room
	for cur.Next(ctx) {
		var room domain.Room
		if err := cur.Decode(&room); err != nil {
			return nil, 0, fmt.Errorf("decode room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, total, cur.Err()
}
