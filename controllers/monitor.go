package controllers

import (
	"net/http"
	"strconv"
	"uniscope/environment"

	"github.com/gin-gonic/gin"
)

// CountRequests returns how many clients are currently in the request registry
func CountRequests(c *gin.Context) {

	// wrap response into an object
	res := struct {
		Count int `json:"count"`
	}{environment.Env.Requests.Count()}

	c.JSON(http.StatusOK, res)
}

// DumpRequests lists the registry's content (capped)
// format => http://localhost:3000/monitor/requests/dump?max=100
func DumpRequests(c *gin.Context) {

	var apiError ErrorResponse

	max := 100 // default
	maxStr := c.Query("max")
	if maxStr != "" {
		m, err := strconv.Atoi(maxStr)
		if err != nil || m < 1 {
			apiError.Code = InvalidRequest
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusUnprocessableEntity, apiError)
			return
		}
		max = m
	}

	c.JSON(http.StatusOK, environment.Env.Requests.Dump(max))
}

// FlushRequests removes expired entries from the registry
// (the same job a ticker GO-routine does periodically)
func FlushRequests(c *gin.Context) {
	environment.Env.Requests.Flush()
	c.Status(http.StatusOK)
}
