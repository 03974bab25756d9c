package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
)

// ListingModule mounts the listing JSON API.
// Public: GET /AirBnBs, /AirBnBs/search, /AirBnBs/:id, /AirBnBs/review/:id
// Users: POST /AirBnBs, PUT|PATCH /AirBnBs/:id, POST /AirBnBs/:id/images
// Admins: DELETE /AirBnBs/:id
type ListingModule struct {
	Handler *handlers.ListingHandler
	IDs     middleware.IdentityResolver
	Redis   *redis.Client
}

func NewListingModule(h *handlers.ListingHandler, ids middleware.IdentityResolver, rdb *redis.Client) *ListingModule {
	return &ListingModule{Handler: h, IDs: ids, Redis: rdb}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/AirBnBs", readLimiter, m.Handler.List)
	rg.GET("/AirBnBs/search", readLimiter, m.Handler.Search)
	rg.GET("/AirBnBs/review/:id", readLimiter, m.Handler.Reviews)
	rg.GET("/AirBnBs/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(
		middleware.Authenticate(m.IDs),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		writers := middleware.RequireRoles(entity.RoleUser, entity.RoleAdmin)
		auth.POST("/AirBnBs", writers, m.Handler.Create)
		auth.PUT("/AirBnBs/:id", writers, m.Handler.Replace)
		auth.PATCH("/AirBnBs/:id", writers, m.Handler.Patch)
		auth.POST("/AirBnBs/:id/images", writers, m.Handler.UploadImage)
		auth.DELETE("/AirBnBs/:id", middleware.RequireRoles(entity.RoleAdmin), m.Handler.Delete)
	}
}
