package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pizza-store/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(a *Auth, roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{a.AuthRequired()}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		s := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"login": s.Login, "role": s.Role, "session_id": s.ID})
	})
	r.GET("/whoami", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuth([]byte("test-secret"), nil)
	token, err := a.GenerateToken(&models.User{Login: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Login)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	token, err := NewAuth([]byte("one"), nil).GenerateToken(&models.User{Login: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)
	_, err = NewAuth([]byte("two"), nil).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	a := NewAuth([]byte("test-secret"), nil)
	claims := Claims{
		Login: "alice",
		Role:  models.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	require.NoError(t, err)
	_, err = a.ParseToken(token)
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	a := NewAuth([]byte("test-secret"), nil)
	r := newRouter(a)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	token, err := a.GenerateToken(&models.User{Login: "dan", Role: models.RoleDriver})
	require.NoError(t, err)
	w := get(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"login":"dan"`)
	assert.Contains(t, w.Body.String(), `"role":"driver"`)
}

func TestRoleRequired(t *testing.T) {
	a := NewAuth([]byte("test-secret"), nil)
	r := newRouter(a, models.RoleDriver, models.RoleManager)

	customer, err := a.GenerateToken(&models.User{Login: "alice", Role: models.RoleCustomer})
	require.NoError(t, err)
	w := get(r, customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "driver, manager")

	manager, err := a.GenerateToken(&models.User{Login: "mia", Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, manager).Code)
}

type roleTable map[string]models.UserRole

func (t roleTable) CurrentRole(_ context.Context, login string) (models.UserRole, error) {
	role, ok := t[login]
	if !ok {
		return "", errors.New("no such user")
	}
	return role, nil
}

func TestCurrentRoleOverridesTokenClaim(t *testing.T) {
	roles := roleTable{"mia": models.RoleManager}
	a := NewAuth([]byte("test-secret"), roles)
	r := newRouter(a, models.RoleManager)

	token, err := a.GenerateToken(&models.User{Login: "mia", Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, token).Code)

	roles["mia"] = models.RoleCustomer
	assert.Equal(t, http.StatusForbidden, get(r, token).Code)

	delete(roles, "mia")
	assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
}
