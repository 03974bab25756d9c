package router

import (
	"fmt"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/container"
	"github.com/oksasatya/airbnb-listing-service/internal/graphql"
	mongoinfra "github.com/oksasatya/airbnb-listing-service/internal/infrastructure/mongo"
	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/router/modules"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
)

type ListingModuleDeps struct {
	Service *application.ListingService
	Handler *handlers.ListingHandler
}

type UserModuleDeps struct {
	Service *application.UserService
	Handler *handlers.UserHandler
}

func buildListingDeps() ListingModuleDeps {
	cfg := container.GetConfig()
	repo := mongoinfra.NewListingRepository(container.GetDatabase().Collection(mongoinfra.ListingsCollection))

	// a nil *GCSUploader must not reach the interface, or uploads would not report 503
	var images application.ImageUploader
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		images = helpers.NewGCSUploader(gcs, cfg.GCSBucket)
	}

	service := application.NewListingService(repo, container.GetRabbitPub(), images, container.GetLogger())
	service.ImagePath = helpers.ListingImagePath

	return ListingModuleDeps{
		Service: service,
		Handler: handlers.NewListingHandler(service, container.GetLogger()),
	}
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	repo := mongoinfra.NewUserRepository(container.GetDatabase().Collection(mongoinfra.UsersCollection))
	service := application.NewUserService(repo, container.GetJWT(), container.GetLogger())

	return UserModuleDeps{
		Service: service,
		Handler: handlers.NewUserHandler(service, container.GetLogger(), helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	rdb := container.GetRedis()
	listingDeps := buildListingDeps()
	userDeps := buildUserDeps()

	schema, err := graphql.NewSchema(listingDeps.Service, container.GetLogger())
	if err != nil {
		return fmt.Errorf("build graphql schema: %w", err)
	}

	r.Add(modules.NewListingModule(listingDeps.Handler, userDeps.Service, rdb))
	r.Add(modules.New(userDeps.Handler, userDeps.Service, rdb))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}

	pages := handlers.NewPageHandler(listingDeps.Service, userDeps.Service, userDeps.Handler.Cookies, container.GetLogger())
	r.AddRoot(modules.NewPageModule(pages, userDeps.Service, rdb))
	r.AddRoot(modules.NewGraphQLModule(handlers.NewGraphQLHandler(schema), rdb))
	return nil
}
