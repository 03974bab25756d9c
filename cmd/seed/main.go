package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/airbnb-listing-service/config"
	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	mongoinfra "github.com/oksasatya/airbnb-listing-service/internal/infrastructure/mongo"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
)

// sample listings for an empty database; the Atlas sample_airbnb set already has thousands
func sampleListings() []*entity.Listing {
	return []*entity.Listing{
		{
			ID:           "10006546",
			ListingURL:   "https://www.airbnb.com/rooms/10006546",
			Name:         "Ribeira Charming Duplex",
			Summary:      "Fantastic duplex apartment with three bedrooms, located in the historic area of Porto.",
			PropertyType: "House",
			RoomType:     "Entire home/apt",
			Accommodates: 8,
			Bedrooms:     3,
			Beds:         5,
			Bathrooms:    1,
			Price:        80,
			Amenities:    []string{"TV", "Wifi", "Kitchen"},
			Address: &entity.Address{
				Street:   "Porto, Porto, Portugal",
				Market:   "Porto",
				Country:  "Portugal",
				Location: entity.NewGeoPoint(-8.61308, 41.1413),
			},
			ReviewScores: &entity.ReviewScores{Value: 9, Rating: 89},
		},
		{
			ID:           "1001265",
			ListingURL:   "https://www.airbnb.com/rooms/1001265",
			Name:         "Ocean View Waikiki Marina w/prkg",
			Summary:      "A short distance from Honolulu's billion dollar mall, and the same distance to Waikiki.",
			PropertyType: "Condominium",
			RoomType:     "Entire home/apt",
			Accommodates: 2,
			Bedrooms:     1,
			Beds:         1,
			Bathrooms:    1,
			Price:        115,
			Amenities:    []string{"TV", "Cable TV", "Wifi", "Pool"},
			Address: &entity.Address{
				Street:   "Honolulu, HI, United States",
				Market:   "Oahu",
				Country:  "United States",
				Location: entity.NewGeoPoint(-157.83919, 21.28634),
			},
			ReviewScores: &entity.ReviewScores{Value: 9, Rating: 98},
		},
		{
			ID:           "10009999",
			ListingURL:   "https://www.airbnb.com/rooms/10009999",
			Name:         "Horto flat with small garden",
			Summary:      "One bedroom flat with a small garden near the Botanical Garden.",
			PropertyType: "Apartment",
			RoomType:     "Entire home/apt",
			Accommodates: 4,
			Bedrooms:     1,
			Beds:         2,
			Bathrooms:    1,
			Price:        317,
			Amenities:    []string{"Wifi", "Kitchen", "Garden or backyard"},
			Address: &entity.Address{
				Street:   "Rio de Janeiro, Rio de Janeiro, Brazil",
				Market:   "Rio De Janeiro",
				Country:  "Brazil",
				Location: entity.NewGeoPoint(-43.23074991429229, -22.966253551739655),
			},
		},
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongoinfra.NewClient(ctx, cfg.MongoURI, cfg.MongoMaxPool, cfg.MongoMinPool, cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.MongoDatabase)
	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := application.NewUserService(
		mongoinfra.NewUserRepository(db.Collection(mongoinfra.UsersCollection)),
		helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		logger,
	)
	key, err := users.RegisterWithRoles(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword, []string{entity.RoleAdmin, entity.RoleUser})
	switch {
	case errors.Is(err, application.ErrUsernameTaken):
		fmt.Printf("admin user %q already exists\n", cfg.SeedAdminUsername)
	case err != nil:
		log.Fatalf("failed to seed admin: %v", err)
	default:
		fmt.Printf("seeded admin: username=%s apiKey=%s\n", cfg.SeedAdminUsername, key)
	}

	listings := mongoinfra.NewListingRepository(db.Collection(mongoinfra.ListingsCollection))
	created := 0
	for _, l := range sampleListings() {
		if err := listings.Create(ctx, l); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			log.Fatalf("failed to seed listing %s: %v", l.ID, err)
		}
		created++
	}
	fmt.Printf("seeded %d sample listings\n", created)
}
