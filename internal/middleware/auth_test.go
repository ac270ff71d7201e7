package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/internal/model"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(allowedRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(allowedRoles...), func(c *gin.Context) {
		userID, err := CurrentUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role": CurrentRole(c)})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireAuthValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(userID, "donor@example.com", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(newTestRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, model.RoleUser, body["role"])
}

func TestRequireAuthMissingHeader(t *testing.T) {
	w := doRequest(newTestRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	w := doRequest(newTestRouter(), "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Expired, tampered and garbage tokens must be indistinguishable to the
// caller.
func TestRequireAuthUniformFailureMessage(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "donor@example.com",
		"role":  model.RoleUser,
		"iat":   time.Now().Add(-time.Hour).Unix(),
		"exp":   time.Now().Add(-30 * time.Minute).Unix(),
	})
	expiredToken, err := expired.SignedString(GetJWTSecret())
	require.NoError(t, err)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": model.RoleUser,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tamperedToken, err := wrongKey.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	router := newTestRouter()
	var messages []string
	for _, token := range []string{expiredToken, tamperedToken, "not-a-token"} {
		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		messages = append(messages, decodeEnvelope(t, w).Message)
	}

	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestRequireAuthRejectsUnknownRoleClaim(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "superadmin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	token, err := forged.SignedString(GetJWTSecret())
	require.NoError(t, err)

	w := doRequest(newTestRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRoleGate(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "donor@example.com", model.RoleUser)
	require.NoError(t, err)

	w := doRequest(newTestRouter(model.RoleAdmin), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(newTestRouter(model.RoleAdmin, model.RoleUser), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateTokenExpiry(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "donor@example.com", model.RoleUser)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return GetJWTSecret(), nil
	})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)

	assert.Equal(t, TokenTTL, exp.Sub(iat.Time))
}
