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

const ticketCollection = "tickets"

// MongoTicketRepository persists service-request tickets.
type MongoTicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *MongoTicketRepository {
	return &MongoTicketRepository{coll: db.Collection(ticketCollection)}
}

func (r *MongoTicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *MongoTicketRepository) FindByID(ctx context.Context, hotelID, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	filter := bson.M{"_id": id, "hotel_id": hotelID}
	if err := r.coll.FindOne(ctx, filter).Decode(&ticket); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &ticket, nil
}

// UpdateStatus atomically sets the new status and appends a history entry.
func (r *MongoTicketRepository) UpdateStatus(ctx context.Context, hotelID, id string, status domain.TicketStatus, ts time.Time, actor, notes string) error {
	entry := domain.TicketHistoryEntry{Status: status, Timestamp: ts, Actor: actor, Notes: notes}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "hotel_id": hotelID},
		bson.M{
			"$set":  bson.M{"status": status, "updated_at": ts},
			"$push": bson.M{"history": entry},
		},
	)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *MongoTicketRepository) List(ctx context.Context, filter ports.ListTicketsFilter) ([]*domain.Ticket, int64, error) {
	query := bson.M{"hotel_id": filter.HotelID}
	if filter.RoomNumber != "" {
		query["room_number"] = filter.RoomNumber
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer cur.Close(ctx)

	var tickets []*domain.Ticket
	for cur.Next(ctx) {
		var t domain.Ticket
		if err := cur.Decode(&t); err != nil {
			return nil, 0, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, &t)
	}
	return tickets, total, cur.Err()
}
