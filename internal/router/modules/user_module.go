package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
)

// Module wires account handlers into routes
// Public: POST /users/register, POST /users/login, POST /users/logout
// Protected: PUT /users/password, GET /users/me
type Module struct {
	Handler *handlers.UserHandler
	IDs     middleware.IdentityResolver
	Redis   *redis.Client
}

func New(h *handlers.UserHandler, ids middleware.IdentityResolver, rdb *redis.Client) *Module {
	return &Module{Handler: h, IDs: ids, Redis: rdb}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil) // 5 req/min per IP
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP

	rg.POST("/users/register", registerLimiter, m.Handler.Register)
	rg.POST("/users/login", loginLimiter, m.Handler.Login)
	rg.POST("/users/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Authenticate(m.IDs))
	auth.Use(middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/users/password", m.Handler.ChangePassword)
		auth.GET("/users/me", m.Handler.Me)
	}
}
