package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

const profileCollection = "profiles"

// MongoProfileRepository persists the tenant-scoped profile rows.
type MongoProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{coll: db.Collection(profileCollection)}
}

type mongoProfile struct {
	ID                 string `bson:"_id"`
	Email              string `bson:"email"`
	Name               string `bson:"name"`
	Role               string `bson:"role"`
	HotelID            string `bson:"hotel_id,omitempty"`
	CanManageRooms     bool   `bson:"can_manage_rooms"`
	CanManageStaff     bool   `bson:"can_manage_staff"`
	NeedsPasswordSetup bool   `bson:"needs_password_setup"`
}

func (r *MongoProfileRepository) FindByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProfileRepository) findOne(ctx context.Context, filter bson.M) (*domain.Profile, error) {
	var mp mongoProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return toProfile(&mp), nil
}

func (r *MongoProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	doc := mongoProfile{
		ID:                 p.ID,
		Email:              p.Email,
		Name:               p.Name,
		Role:               string(p.Role),
		HotelID:            p.HotelID,
		CanManageRooms:     p.CanManageRooms,
		CanManageStaff:     p.CanManageStaff,
		NeedsPasswordSetup: p.NeedsPasswordSetup,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *MongoProfileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *MongoProfileRepository) SetNeedsPasswordSetup(ctx context.Context, id string, needs bool) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"needs_password_setup": needs}},
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func toProfile(mp *mongoProfile) *domain.Profile {
	return &domain.Profile{
		ID:                 mp.ID,
		Email:              mp.Email,
		Name:               mp.Name,
		Role:               domain.Role(mp.Role),
		HotelID:            mp.HotelID,
		CanManageRooms:     mp.CanManageRooms,
		CanManageStaff:     mp.CanManageStaff,
		NeedsPasswordSetup: mp.NeedsPasswordSetup,
	}
}
