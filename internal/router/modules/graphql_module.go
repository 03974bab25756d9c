package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
)

// GraphQLModule exposes the read-only listing schema at /graphql
type GraphQLModule struct {
	Handler *handlers.GraphQLHandler
	Redis   *redis.Client
}

func NewGraphQLModule(h *handlers.GraphQLHandler, rdb *redis.Client) *GraphQLModule {
	return &GraphQLModule{Handler: h, Redis: rdb}
}

func (m *GraphQLModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/graphql", rl, m.Handler.Serve)
	rg.POST("/graphql", rl, m.Handler.Serve)
}
