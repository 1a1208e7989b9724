package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext(t *testing.T, method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	return c, w
}

func TestProfileHandlersRequireAuth(t *testing.T) {
	handlers := map[string]gin.HandlerFunc{
		"get":    GetCurrentUser,
		"update": UpdateMyProfile,
		"upload": UploadProfileImage,
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			c, w := testContext(t, http.MethodGet, "")
			handler(c)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestUpdateUserRoleRejectsBadInput(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		c, w := testContext(t, http.MethodPut, `{"role":"admin"}`)
		c.Params = gin.Params{{Key: "id", Value: "not-a-hex-id"}}
		UpdateUserRole(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown role", func(t *testing.T) {
		c, w := testContext(t, http.MethodPut, `{"role":"superuser"}`)
		c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}
		UpdateUserRole(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
