package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
	"github.com/oksasatya/airbnb-listing-service/pkg/response"
)

const (
	CtxIdentityKey = "identity"
	CtxUserIDKey   = "userID"

	APIKeyHeader = "x-api-key"
)

// IdentityResolver maps a credential to the user it belongs to
type IdentityResolver interface {
	ResolveToken(ctx context.Context, token string) (*entity.User, error)
	ResolveAPIKey(ctx context.Context, key string) (*entity.User, error)
}

// CurrentUser returns the identity attached by one of the auth middlewares
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

// ActorName is the username of the caller, empty when anonymous
func ActorName(c *gin.Context) string {
	if u, ok := CurrentUser(c); ok {
		return u.Username
	}
	return ""
}

func attach(c *gin.Context, u *entity.User) {
	c.Set(CtxIdentityKey, u)
	c.Set(CtxUserIDKey, u.ID)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// resolveHeaders tries the bearer token then the API key; either succeeding authenticates
func resolveHeaders(c *gin.Context, ids IdentityResolver) (*entity.User, bool) {
	ctx := c.Request.Context()
	if tok := bearerToken(c); tok != "" {
		if u, err := ids.ResolveToken(ctx, tok); err == nil {
			return u, true
		}
	}
	if key := strings.TrimSpace(c.GetHeader(APIKeyHeader)); key != "" {
		if u, err := ids.ResolveAPIKey(ctx, key); err == nil {
			return u, true
		}
	}
	return nil, false
}

func resolveCookie(c *gin.Context, ids IdentityResolver) (*entity.User, bool) {
	tok, err := c.Cookie(helpers.SessionCookie)
	if err != nil || tok == "" {
		return nil, false
	}
	u, err := ids.ResolveToken(c.Request.Context(), tok)
	if err != nil {
		return nil, false
	}
	return u, true
}

// Authenticate requires a bearer token or API key and answers 401 otherwise
func Authenticate(ids IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := resolveHeaders(c, ids)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		attach(c, u)
		c.Next()
	}
}

// AuthenticatePage requires the session cookie; browsers without one are
// sent to loginPath with the original path in next.
func AuthenticatePage(ids IdentityResolver, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := resolveCookie(c, ids)
		if !ok {
			c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		attach(c, u)
		c.Next()
	}
}

// OptionalAuth attaches an identity from the cookie or headers when one is valid
// and otherwise proceeds anonymously.
func OptionalAuth(ids IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := resolveCookie(c, ids); ok {
			attach(c, u)
		} else if u, ok := resolveHeaders(c, ids); ok {
			attach(c, u)
		}
		c.Next()
	}
}

// RequireRoles answers 401 without an identity and 403 when the caller holds none of roles
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		if !u.HasAnyRole(roles...) {
			response.Error(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}

// RequirePageRoles is RequireRoles for browser routes; it renders the named error template
func RequirePageRoles(errorTemplate string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		status := http.StatusForbidden
		switch {
		case !ok:
			status = http.StatusUnauthorized
		case u.HasAnyRole(roles...):
			c.Next()
			return
		}
		c.HTML(status, errorTemplate, gin.H{
			"Status":  status,
			"Message": http.StatusText(status),
			"User":    u,
		})
		c.Abort()
	}
}
