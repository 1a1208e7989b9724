package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", BearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", BearerToken("abc123"))
	assert.Equal(t, "", BearerToken(""))
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	secret := []byte("test-secret")
	token := signToken(t, secret, jwt.MapClaims{
		"userId": "abc",
		"role":   "admin",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256)

	claims, err := ParseClaims(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims["userId"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseClaimsExpired(t *testing.T) {
	secret := []byte("test-secret")
	token := signToken(t, secret, jwt.MapClaims{
		"userId": "abc",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}, jwt.SigningMethodHS256)

	_, err := ParseClaims(token, secret)
	assert.Error(t, err)
}

func TestAdminMiddlewareGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(role string, setRole bool) int {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if setRole {
			c.Set("role", role)
		}
		AdminMiddleware()(c)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run("admin", true))
	assert.Equal(t, http.StatusForbidden, run("user", true))
	assert.Equal(t, http.StatusForbidden, run("", false))
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.False(t, IsAdmin(c))
	assert.Equal(t, "", UserID(c))

	c.Set("role", "admin")
	c.Set("userId", "abc")
	assert.True(t, IsAdmin(c))
	assert.Equal(t, "abc", UserID(c))
}

func TestParseClaimsWrongSecret(t *testing.T) {
	token := signToken(t, []byte("secret-a"), jwt.MapClaims{
		"userId": "abc",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256)

	_, err := ParseClaims(token, []byte("secret-b"))
	assert.Error(t, err)
}
