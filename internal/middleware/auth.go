package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// UserEmailKey is the gin context key holding the authenticated email.
const UserEmailKey = "userEmail"

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"Status": "Fail", "Message": message})
}

// JWTMiddleware validates an HS256 bearer token signed with secret and
// stores its subject under UserEmailKey.
func JWTMiddleware(secret string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			log.Warn("Middleware: Invalid Authorization header format")
			abort(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			log.Warnf("Middleware: Rejected token: %v", err)
			abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if claims.Subject == "" {
			log.Warn("Middleware: Token carries no subject")
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(UserEmailKey, strings.ToLower(claims.Subject))
		c.Next()
	}
}

// AdminOnly must run after JWTMiddleware.
func AdminOnly(adminEmail string, log *logrus.Logger) gin.HandlerFunc {
	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	return func(c *gin.Context) {
		email := c.GetString(UserEmailKey)
		if adminEmail == "" || email != adminEmail {
			log.Warnf("Middleware: %q is not allowed on %s", email, c.Request.URL.Path)
			abort(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
