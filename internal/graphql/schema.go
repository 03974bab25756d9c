// Package graphql exposes listings through a read-only GraphQL schema.
// Field names follow the stored document, so the default resolver maps them
// through the json tags of entity.Listing.
package graphql

import (
	"context"
	"errors"

	gql "github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
)

// DefaultLimit is used when airbnbs is queried without a limit
const DefaultLimit = 10

// ErrInternal replaces store failures in the errors array
var ErrInternal = errors.New("internal error")

// ListingReader is the read side the schema resolves against
type ListingReader interface {
	Get(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, limit int) ([]*entity.Listing, error)
}

func fields(kinds map[string]gql.Output) gql.Fields {
	out := gql.Fields{}
	for name, t := range kinds {
		out[name] = &gql.Field{Type: t}
	}
	return out
}

var (
	stringList = gql.NewList(gql.String)

	imagesType = gql.NewObject(gql.ObjectConfig{
		Name: "Images",
		Fields: fields(map[string]gql.Output{
			"thumbnail_url":  gql.String,
			"medium_url":     gql.String,
			"picture_url":    gql.String,
			"xl_picture_url": gql.String,
		}),
	})

	hostType = gql.NewObject(gql.ObjectConfig{
		Name: "Host",
		Fields: fields(map[string]gql.Output{
			"host_id":                   gql.String,
			"host_name":                 gql.String,
			"host_since":                gql.DateTime,
			"host_location":             gql.String,
			"host_about":                gql.String,
			"host_response_time":        gql.String,
			"host_response_rate":        gql.String,
			"host_is_superhost":         gql.Boolean,
			"host_thumbnail_url":        gql.String,
			"host_picture_url":          gql.String,
			"host_neighbourhood":        gql.String,
			"host_listings_count":       gql.Float,
			"host_total_listings_count": gql.Float,
			"host_verifications":        stringList,
			"host_has_profile_pic":      gql.Boolean,
			"host_identity_verified":    gql.Boolean,
		}),
	})

	locationType = gql.NewObject(gql.ObjectConfig{
		Name: "Location",
		Fields: fields(map[string]gql.Output{
			"type":        gql.String,
			"coordinates": gql.NewList(gql.Float),
		}),
	})

	addressType = gql.NewObject(gql.ObjectConfig{
		Name: "Address",
		Fields: fields(map[string]gql.Output{
			"street":          gql.String,
			"suburb":          gql.String,
			"government_area": gql.String,
			"market":          gql.String,
			"country":         gql.String,
			"country_code":    gql.String,
			"location":        locationType,
		}),
	})

	availabilityType = gql.NewObject(gql.ObjectConfig{
		Name: "Availability",
		Fields: fields(map[string]gql.Output{
			"availability_30":  gql.Float,
			"availability_60":  gql.Float,
			"availability_90":  gql.Float,
			"availability_365": gql.Float,
		}),
	})

	reviewScoresType = gql.NewObject(gql.ObjectConfig{
		Name: "ReviewScores",
		Fields: fields(map[string]gql.Output{
			"review_scores_accuracy":      gql.Float,
			"review_scores_cleanliness":   gql.Float,
			"review_scores_checkin":       gql.Float,
			"review_scores_communication": gql.Float,
			"review_scores_location":      gql.Float,
			"review_scores_value":         gql.Float,
			"review_scores_rating":        gql.Float,
		}),
	})

	reviewType = gql.NewObject(gql.ObjectConfig{
		Name: "Review",
		Fields: fields(map[string]gql.Output{
			"_id":           gql.String,
			"date":          gql.DateTime,
			"listing_id":    gql.String,
			"reviewer_id":   gql.String,
			"reviewer_name": gql.String,
			"comments":      gql.String,
		}),
	})

	airbnbType = gql.NewObject(gql.ObjectConfig{
		Name: "Airbnb",
		Fields: fields(map[string]gql.Output{
			"_id":                   gql.String,
			"listing_url":           gql.String,
			"name":                  gql.String,
			"summary":               gql.String,
			"space":                 gql.String,
			"description":           gql.String,
			"neighborhood_overview": gql.String,
			"notes":                 gql.String,
			"transit":               gql.String,
			"access":                gql.String,
			"interaction":           gql.String,
			"house_rules":           gql.String,
			"property_type":         gql.String,
			"room_type":             gql.String,
			"bed_type":              gql.String,
			"minimum_nights":        gql.String,
			"maximum_nights":        gql.String,
			"cancellation_policy":   gql.String,
			"last_scraped":          gql.DateTime,
			"calendar_last_scraped": gql.DateTime,
			"first_review":          gql.DateTime,
			"last_review":           gql.DateTime,
			"accommodates":          gql.Float,
			"bedrooms":              gql.Float,
			"beds":                  gql.Float,
			"number_of_reviews":     gql.Float,
			"bathrooms":             gql.Float,
			"amenities":             stringList,
			"price":                 gql.Float,
			"security_deposit":      gql.Float,
			"cleaning_fee":          gql.Float,
			"extra_people":          gql.Float,
			"guests_included":       gql.Float,
			"images":                imagesType,
			"host":                  hostType,
			"address":               addressType,
			"availability":          availabilityType,
			"review_scores":         reviewScoresType,
			"reviews":               gql.NewList(reviewType),
		}),
	})
)

// NewSchema builds the query root: airbnb(id) and airbnbs(limit)
func NewSchema(listings ListingReader, logger logrus.FieldLogger) (gql.Schema, error) {
	internal := func(field string, err error) error {
		if logger != nil {
			logger.WithError(err).WithField("field", field).Error("graphql resolve failed")
		}
		return ErrInternal
	}

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"airbnb": &gql.Field{
				Type: airbnbType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					l, err := listings.Get(p.Context, id)
					if errors.Is(err, repository.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, internal("airbnb", err)
					}
					return l, nil
				},
			},
			"airbnbs": &gql.Field{
				Type: gql.NewList(airbnbType),
				Args: gql.FieldConfigArgument{
					"limit": &gql.ArgumentConfig{Type: gql.Int, DefaultValue: DefaultLimit},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					limit, ok := p.Args["limit"].(int)
					if !ok {
						limit = DefaultLimit
					}
					list, err := listings.List(p.Context, limit)
					if err != nil {
						return nil, internal("airbnbs", err)
					}
					return list, nil
				},
			},
		},
	})
	return gql.NewSchema(gql.SchemaConfig{Query: query})
}
