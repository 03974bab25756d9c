package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (listings, users, pages, graphql, debug) that
// mounts its routes on the group the Registry hands it.
type Module interface {
	Register(rg *gin.RouterGroup)
}
