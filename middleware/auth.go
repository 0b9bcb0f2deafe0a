package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pizza-store/models"
	"pizza-store/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKey = "session"

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is the JWT payload.
type Claims struct {
	Login string          `json:"login"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// RoleSource looks up a user's current role.
type RoleSource interface {
	CurrentRole(ctx context.Context, login string) (models.UserRole, error)
}

// Auth issues and verifies HS256 tokens signed with Secret. When Roles is set, every
// request takes the caller's role from it instead of from the token, so a role change
// applies to tokens already issued.
type Auth struct {
	Secret []byte
	Roles  RoleSource
}

// NewAuth returns an Auth signing with secret. roles may be nil.
func NewAuth(secret []byte, roles RoleSource) *Auth {
	return &Auth{Secret: secret, Roles: roles}
}

// GenerateToken creates a signed JWT for a given user. The token id doubles as the
// session id of every request made with it.
func (a *Auth) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Login: user.Login,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Login,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}

// ParseToken verifies tokenStr and returns its claims.
func (a *Auth) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || !claims.Role.Valid() || claims.Login == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// AuthRequired validates the JWT and injects the caller's session into the context
func (a *Auth) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		claims, err := a.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		role := claims.Role
		if a.Roles != nil {
			role, err = a.Roles.CurrentRole(c.Request.Context(), claims.Login)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is no longer valid"})
				c.Abort()
				return
			}
		}
		c.Set(sessionKey, &session.Session{ID: claims.ID, Login: claims.Login, Role: role})
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if !s.LoggedIn() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			c.Abort()
			return
		}
		for _, r := range roles {
			if s.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
		c.Abort()
	}
}

func rolesString(roles []models.UserRole) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

// GetSession returns the caller's session, or nil outside AuthRequired.
func GetSession(c *gin.Context) *session.Session {
	val, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := val.(*session.Session)
	return s
}
