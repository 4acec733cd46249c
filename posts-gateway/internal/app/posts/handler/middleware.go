package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mello-felipe/travel-map-social-app/pkg/logger"
	"github.com/mello-felipe/travel-map-social-app/pkg/metrics"
	"github.com/mello-felipe/travel-map-social-app/posts-gateway/internal/app/posts/repository"
)

// JWTClaims are the token claims issued by the auth service.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token on every posts request.
type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the JWT and stores the user identity in the gin
// context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(m.jwtSecret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// IdempotencyMiddleware short-circuits replays of requests that carry an
// Idempotency-Key header. The community-post protocol is not atomic, so a
// blind retry of a partially completed flow would duplicate lists and
// spots; this is the layer where such retries must be caught. Requests
// without the header pass through, and a broken store fails open — the
// gateway prefers a possible duplicate over rejecting every post.
func IdempotencyMiddleware(repo repository.IdempotencyRepository, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		seen, err := repo.MarkIfNew(c.Request.Context(), key, ttl)
		if err != nil {
			logger.Warn().Err(err).Msg("Idempotency store unavailable, failing open")
			c.Next()
			return
		}

		if seen {
			metrics.IdempotencyReplays.Inc()
			c.JSON(http.StatusConflict, gin.H{"error": "Idempotency-Key already used"})
			c.Abort()
			return
		}

		c.Next()
	}
}
