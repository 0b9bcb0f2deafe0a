// Package handlers is the JSON surface of the pizza store, served with -serve.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"pizza-store/logger"
	"pizza-store/middleware"
	"pizza-store/repository"

	"github.com/gin-gonic/gin"
)

// Handler serves the API routes from one repository.
type Handler struct {
	Repo *repository.Repository
	Auth *middleware.Auth
}

// New returns a Handler using repo for data and auth for tokens.
func New(repo *repository.Repository, auth *middleware.Auth) *Handler {
	return &Handler{Repo: repo, Auth: auth}
}

var errorStatus = []struct {
	err    error
	status int
}{
	{repository.ErrInvalidCredentials, http.StatusUnauthorized},
	{repository.ErrNotLoggedIn, http.StatusUnauthorized},
	{repository.ErrForbidden, http.StatusForbidden},
	{repository.ErrOrderNotFound, http.StatusNotFound},
	{repository.ErrUserNotFound, http.StatusNotFound},
	{repository.ErrItemNotFound, http.StatusNotFound},
	{repository.ErrLoginTaken, http.StatusConflict},
	{repository.ErrItemExists, http.StatusConflict},
	{repository.ErrInvalidTransition, http.StatusUnprocessableEntity},
	{repository.ErrStoreNotOpen, http.StatusUnprocessableEntity},
	{repository.ErrUnknownItem, http.StatusUnprocessableEntity},
	{repository.ErrEmptyOrder, http.StatusUnprocessableEntity},
	{repository.ErrInvalidInput, http.StatusBadRequest},
	{repository.ErrInvalidRole, http.StatusBadRequest},
	{repository.ErrInvalidPrice, http.StatusBadRequest},
	{repository.ErrInvalidQuantity, http.StatusBadRequest},
}

// respondError writes err with the status its sentinel maps to. Anything unmapped is a 500
// and is logged.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	logger.Error(middleware.GetSession(c), "request failed", err,
		logger.Action(c.Request.Method+" "+c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be a number"})
		return 0, false
	}
	return id, true
}
