package handlers

import (
	"net/http"

	"pizza-store/logger"
	"pizza-store/middleware"
	"pizza-store/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateItemRequest struct {
	ItemName    string `json:"item_name" binding:"required"`
	Ingredients string `json:"ingredients"`
	TypeOfItem  string `json:"type_of_item" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Description string `json:"description"`
}

// FieldUpdateRequest changes a single attribute, mirroring the console's one-field updates.
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// CreateItem adds a menu item (manager only)
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.Repo.CreateItem(c.Request.Context(), repository.NewItem{
		ItemName:    req.ItemName,
		Ingredients: req.Ingredients,
		TypeOfItem:  req.TypeOfItem,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(middleware.GetSession(c), "menu item added", zap.String("item", item.ItemName))
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// UpdateItem changes one of ingredients, typeofitem, price or description (manager only)
func (h *Handler) UpdateItem(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	name := c.Param("name")
	if err := h.Repo.UpdateItemField(ctx, name, repository.ItemField(req.Field), req.Value); err != nil {
		respondError(c, err)
		return
	}

	item, err := h.Repo.GetItem(ctx, name)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(middleware.GetSession(c), "menu item updated", zap.String("item", name), zap.String("field", req.Field))
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated", "item": item})
}

// UpdateUser changes one of password, role, favoriteitems or phonenum of any user (manager only)
func (h *Handler) UpdateUser(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	login := c.Param("login")
	if err := h.Repo.UpdateUserField(ctx, login, repository.UserField(req.Field), req.Value); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.Repo.GetUser(ctx, login)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info(middleware.GetSession(c), "user updated", zap.String("target", login), zap.String("field", req.Field))
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
}
