package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"fleet_booking/internal/permissions"
)

var (
	secretOnce sync.Once
	secret     []byte
)

// jwtSecret resolves the signing key on first use rather than at package
// init, so a JWT_SECRET loaded from .env during config setup is honoured.
func jwtSecret() []byte {
	secretOnce.Do(func() {
		secret = []byte(getJWTSecret())
	})
	return secret
}

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

func tokenTTL() time.Duration {
	if val := os.Getenv("TOKEN_TTL_HOURS"); val != "" {
		if hours, err := strconv.Atoi(val); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 72 * time.Hour
}

// GenerateToken issues a signed session token for the user. Expiry comes
// from TOKEN_TTL_HOURS; restarting with a fresh JWT_SECRET revokes every
// outstanding token.
func GenerateToken(userID uint, role string) (string, error) {
	return GenerateTokenWithTTL(userID, role, tokenTTL())
}

func GenerateTokenWithTTL(userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
}

// RequireAuth ensures a valid bearer token is present and stores its claims
// in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "auth_error",
				"message": "Missing or invalid Authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "auth_error",
				"message": "Invalid or expired token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "auth_error",
				"message": "Invalid token claims",
			})
			return
		}
		c.Set("user_id", claims["user_id"])
		c.Set("role", claims["role"])

		c.Next()
	}
}

// RequirePermission ensures the authenticated user's role is granted the
// action in the permission table.
func RequirePermission(action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleIfc, exists := c.Get("role")
		role, ok := roleIfc.(string)
		if !exists || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "auth_error",
				"message": "Role not found in token",
			})
			return
		}
		if !permissions.Allowed(role, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
