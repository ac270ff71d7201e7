package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"backend/internal/model"
	"backend/pkg/apperror"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the lifetime of an issued credential token.
const TokenTTL = 30 * time.Minute

// Token failures (expired, tampered, malformed) are all reported with this
// one message so callers cannot distinguish the cause.
const invalidCredentialMsg = "could not validate credentials"

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in release mode")
		}
		secret = "default_super_secret_key" // Development fallback only
	}
	return []byte(secret)
}

// GenerateToken issues a signed, time-limited credential carrying the
// external user id, email and role.
func GenerateToken(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	})
	return token.SignedString(GetJWTSecret())
}

// RequireAuth validates the bearer token and, when allowedRoles is non-empty,
// checks the token's role against it. Admins do not bypass role checks here;
// handlers that also admit admins list the role explicitly.
func RequireAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(apperror.Unauthorizedf("authorization header is missing")))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(apperror.Unauthorizedf("invalid authorization format, expected 'Bearer <token>'")))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(apperror.Unauthorizedf(invalidCredentialMsg)))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(apperror.Unauthorizedf(invalidCredentialMsg)))
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if sub == "" || !model.ValidRole(role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(apperror.Unauthorizedf(invalidCredentialMsg)))
			return
		}

		if len(allowedRoles) > 0 {
			allowed := false
			for _, r := range allowedRoles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Fail(apperror.Forbiddenf("access denied: insufficient permissions")))
				return
			}
		}

		c.Set("userID", sub)
		c.Set("userEmail", email)
		c.Set("userRole", role)

		c.Next()
	}
}

// CurrentUserID resolves the authenticated external user id from the context.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, apperror.Unauthorizedf(invalidCredentialMsg)
	}
	idStr, ok := raw.(string)
	if !ok {
		return uuid.Nil, apperror.Unauthorizedf(invalidCredentialMsg)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, apperror.Unauthorizedf(invalidCredentialMsg)
	}
	return id, nil
}

// CurrentRole returns the authenticated role, or empty when unauthenticated.
func CurrentRole(c *gin.Context) string {
	role, _ := c.Get("userRole")
	s, _ := role.(string)
	return s
}

// IsAdmin reports whether the authenticated caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return CurrentRole(c) == model.RoleAdmin
}
