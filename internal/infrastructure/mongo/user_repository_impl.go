package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
)

const apiKeyIndex = "apiKey_1"

// userDoc is the stored shape of a user; ids are ObjectIDs on disk
type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	Roles     []string           `bson:"roles"`
	APIKey    string             `bson:"apiKey"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Password:  d.Password,
		Roles:     d.Roles,
		APIKey:    d.APIKey,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Username:  u.Username,
		Password:  u.Password,
		Roles:     u.Roles,
		APIKey:    u.APIKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), apiKeyIndex) {
			return repository.ErrAPIKeyTaken
		}
		return mapErr(err)
	}
	u.ID = doc.ID.Hex()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByAPIKey(ctx context.Context, key string) (*entity.User, error) {
	if key == "" {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"apiKey": key})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var d userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d.toEntity(), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
