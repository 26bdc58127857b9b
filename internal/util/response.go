package util

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the body of a successful reply.
type Response map[string]interface{}

// Success writes a 200 reply.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 reply.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, data)
}

// Error writes an error reply as {"error": msg}.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// ServerError logs the cause server-side and writes a generic 500. No
// internal detail reaches the client.
func ServerError(c *gin.Context, err error) {
	log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
