package modules_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	handlers "github.com/oksasatya/airbnb-listing-service/internal/interface/http"
	"github.com/oksasatya/airbnb-listing-service/internal/router/modules"
	"github.com/oksasatya/airbnb-listing-service/internal/testutils"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
	"github.com/oksasatya/airbnb-listing-service/web"
)

type fixture struct {
	engine *gin.Engine
	users  *application.UserService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	listings := application.NewListingService(testutils.NewListingRepo(
		&entity.Listing{ID: "a1", Name: "Alpha"},
		&entity.Listing{ID: "b1", Name: "Beta"},
	), nil, nil, nil)
	users := application.NewUserService(testutils.NewUserRepo(), helpers.NewJWTManager("secret", time.Hour), nil)
	cookies := helpers.NewCookie("", false)

	tmpl, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	api := r.Group("/api")
	modules.NewListingModule(handlers.NewListingHandler(listings, nil), users, nil).Register(api)
	modules.New(handlers.NewUserHandler(users, nil, cookies), users, nil).Register(api)
	modules.NewDebugModule(nil).Register(api)
	modules.NewPageModule(handlers.NewPageHandler(listings, users, cookies, nil), users, nil).Register(&r.RouterGroup)

	return fixture{engine: r, users: users}
}

func (f fixture) token(t *testing.T, username string, roles ...string) string {
	t.Helper()
	_, err := f.users.RegisterWithRoles(context.Background(), username, "password123", roles)
	require.NoError(t, err)
	res, err := f.users.Login(context.Background(), username, "password123")
	require.NoError(t, err)
	return res.Token
}

func (f fixture) serve(method, target, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestListingModule_Routes(t *testing.T) {
	f := newFixture(t)
	userTok := f.token(t, "alice", entity.RoleUser)
	adminTok := f.token(t, "root", entity.RoleAdmin)

	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/AirBnBs", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/AirBnBs/search?name=alp", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/AirBnBs/a1", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/AirBnBs/review/a1", "").Code)

	assert.Equal(t, http.StatusUnauthorized, f.serve(http.MethodDelete, "/api/AirBnBs/a1", "").Code)
	assert.Equal(t, http.StatusForbidden, f.serve(http.MethodDelete, "/api/AirBnBs/a1", userTok).Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodDelete, "/api/AirBnBs/a1", adminTok).Code)
	assert.Equal(t, http.StatusNotFound, f.serve(http.MethodDelete, "/api/AirBnBs/a1", adminTok).Code)
}

func TestUserModule_Routes(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, "alice", entity.RoleUser)

	assert.Equal(t, http.StatusUnauthorized, f.serve(http.MethodGet, "/api/users/me", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/api/users/me", tok).Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodPost, "/api/users/logout", "").Code)
}

func TestPageModule_Routes(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/airbnb/b1", "").Code)
	assert.Equal(t, http.StatusOK, f.serve(http.MethodGet, "/login", "").Code)

	w := f.serve(http.MethodPost, "/delete/airbnb/b1", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/login?next="))
}

func TestDebugModule_ServesExpvar(t *testing.T) {
	f := newFixture(t)

	w := f.serve(http.MethodGet, "/api/debug/vars", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memstats"`)
}
