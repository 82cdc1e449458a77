package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe devolve quem está logado segundo o token e a loja correspondente.
func (h *MeHandler) GetMe(c *gin.Context) {
	role, _ := c.Get(middleware.ContextUserRole)

	var shop models.Shop
	if err := h.db.WithContext(c.Request.Context()).
		First(&shop, "id = ?", middleware.ShopID(c)).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "shop_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":   middleware.UserID(c),
			"role": role,
		},
		"shop": gin.H{
			"id":   shop.ID,
			"name": shop.Name,
			"slug": shop.Slug,
			"kind": shop.Kind,
		},
	})
}
