package api

import (
	"net/http" // HTTP status codes

	"zenithx_backend/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// TokenRequest carries the email to mint a token for
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"` // Caller identity
}

// TokenHandler mints the capability token consumed by the admin boundary.
// Identity is established upstream by the frontend's auth provider; the
// backend only signs the email claim. Authorization itself happens against
// the users collection on every admin request.
func TokenHandler(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
			return
		}
		token, err := utils.GenerateJWT(req.Email, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
