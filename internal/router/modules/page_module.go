package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
	"github.com/oksasatya/airbnb-listing-service/web"
)

const loginPath = "/login"

// PageModule mounts the browser routes at the engine root
type PageModule struct {
	Handler *handlers.PageHandler
	IDs     middleware.IdentityResolver
	Redis   *redis.Client
}

func NewPageModule(h *handlers.PageHandler, ids middleware.IdentityResolver, rdb *redis.Client) *PageModule {
	return &PageModule{Handler: h, IDs: ids, Redis: rdb}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	soft := middleware.OptionalAuth(m.IDs)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/", soft, m.Handler.Home)
	rg.GET("/search", soft, m.Handler.Search)
	rg.GET("/airbnb/:id", soft, m.Handler.View)
	rg.GET(loginPath, m.Handler.LoginForm)
	rg.POST(loginPath, loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)

	ui := rg.Group("/")
	ui.Use(middleware.AuthenticatePage(m.IDs, loginPath))
	{
		ui.GET("/addnewairbnb", m.Handler.AddForm)
		ui.POST("/addnewairbnb", m.Handler.Add)
		ui.GET("/update/airbnb/:id", m.Handler.UpdateForm)
		ui.POST("/update/airbnb/:id", m.Handler.Update)
		ui.POST("/delete/airbnb/:id", middleware.RequirePageRoles(web.ErrorTemplate, entity.RoleAdmin), m.Handler.Delete)
	}
}
