package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingModule struct{ path string }

func (m pingModule) Register(rg *gin.RouterGroup) {
	rg.GET(m.path, func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistry_MountsAPIAndRootModules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New())
	reg.Use(func(c *gin.Context) { c.Set("mw", "api"); c.Next() })
	reg.Add(pingModule{path: "/ping"})
	reg.AddRoot(pingModule{path: "/page"})
	reg.RegisterAll()

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/api/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "api", w.Body.String())

	w = get("/page")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String(), "api middleware must not leak onto root routes")

	assert.Equal(t, http.StatusNotFound, get("/ping").Code)
}
