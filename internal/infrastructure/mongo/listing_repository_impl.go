package mongo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
)

type ListingRepository struct {
	coll *mongo.Collection
}

func NewListingRepository(coll *mongo.Collection) *ListingRepository {
	return &ListingRepository{coll: coll}
}

// BuildNameFilter returns a case-insensitive "name contains" predicate.
// Metacharacters in substring are escaped; an empty substring yields no predicate.
func BuildNameFilter(substring string) bson.M {
	if substring == "" {
		return bson.M{}
	}
	return bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(substring), Options: "i"}}
}

// BuildListingFilter translates f into a query document
func BuildListingFilter(f repository.ListingFilter) bson.M {
	q := BuildNameFilter(f.NameContains)
	if f.PropertyType != "" {
		q["property_type"] = f.PropertyType
	}
	return q
}

func (r *ListingRepository) Count(ctx context.Context, f repository.ListingFilter) (int64, error) {
	return r.coll.CountDocuments(ctx, BuildListingFilter(f))
}

func (r *ListingRepository) Find(ctx context.Context, f repository.ListingFilter, skip, limit int64) ([]*entity.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, BuildListingFilter(f), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*entity.Listing, 0, limit)
	for cur.Next(ctx) {
		var l entity.Listing
		if err := cur.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, cur.Err()
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	var l entity.Listing
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, mapErr(err)
	}
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	_, err := r.coll.InsertOne(ctx, l)
	return mapErr(err)
}

func (r *ListingRepository) Update(ctx context.Context, id string, l *entity.Listing, mode repository.UpdateMode) (*entity.Listing, error) {
	after := options.After
	var res *mongo.SingleResult

	switch mode {
	case repository.UpdateMerge:
		set, err := mergeFields(l)
		if err != nil {
			return nil, err
		}
		if len(set) == 0 {
			return r.GetByID(ctx, id)
		}
		res = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
			&options.FindOneAndUpdateOptions{ReturnDocument: &after})
	default:
		replacement := *l
		replacement.ID = id
		res = r.coll.FindOneAndReplace(ctx, bson.M{"_id": id}, &replacement,
			&options.FindOneAndReplaceOptions{ReturnDocument: &after})
	}

	var out entity.Listing
	if err := res.Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (r *ListingRepository) SetPictureURL(ctx context.Context, id, url string) (*entity.Listing, error) {
	after := options.After
	res := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"images.picture_url": url}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after})

	var out entity.Listing
	if err := res.Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) (*entity.Listing, error) {
	var out entity.Listing
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// mergeFields returns the non-zero top-level fields of l, without _id
func mergeFields(l *entity.Listing) (bson.M, error) {
	raw, err := bson.Marshal(l)
	if err != nil {
		return nil, err
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, err
	}
	delete(set, "_id")
	return set, nil
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
