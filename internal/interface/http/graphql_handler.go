package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	gql "github.com/graphql-go/graphql"

	"github.com/oksasatya/airbnb-listing-service/pkg/response"
)

type GraphQLHandler struct {
	Schema gql.Schema
}

func NewGraphQLHandler(schema gql.Schema) *GraphQLHandler {
	return &GraphQLHandler{Schema: schema}
}

type graphQLRequest struct {
	Query         string         `json:"query" form:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName" form:"operationName"`
}

// Serve executes a query from a JSON body (POST) or the query string (GET).
// Results use the GraphQL response shape rather than the API envelope.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req graphQLRequest
	if c.Request.Method == http.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				response.Error(c, http.StatusBadRequest, "invalid variables", nil)
				return
			}
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	if req.Query == "" {
		response.Error(c, http.StatusBadRequest, "query is required", nil)
		return
	}

	res := gql.Do(gql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})
	c.JSON(http.StatusOK, res)
}
