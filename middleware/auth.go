package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	userRepo "mentorly/database/repository/user"
	"mentorly/utils"
)

// JWTAuthMiddleware validates the bearer token and resolves the caller.
// Resolved IDs are cached in Redis for AuthCacheTTL so repeated requests
// skip the user lookup; a missing cache entry falls through to the database.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		cache := utils.GetAuthCacheClient()
		cacheKey := utils.AuthCachePrefix + userID
		if _, err := cache.Get(ctx, cacheKey).Result(); err != nil {
			if err != redis.Nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization cache unavailable"})
				return
			}
			user, err := users.GetByID(ctx, userID)
			if err != nil || user == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown account"})
				return
			}
			cache.Set(ctx, cacheKey, user.Role, utils.AuthCacheTTL)
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// GetUserID returns the authenticated caller's ID set by JWTAuthMiddleware.
func GetUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	s, _ := id.(string)
	return s
}
