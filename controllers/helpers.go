package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Created is the standard response for new items
type Created struct {
	ID string `json:"id"`
}

// Test is a simple liveness check
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
