package controllers

import (
	"net/http"
	"uniscope/database"

	"github.com/gin-gonic/gin"
)

// ListLookups returns the entire code/text map so clients can cache it once
func ListLookups(c *gin.Context) {

	codes, err := database.GetLookups()
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, codes)
}
