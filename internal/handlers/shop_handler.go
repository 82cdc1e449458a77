package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/domain/hours"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/storage"
)

type ShopHandler struct {
	db      *gorm.DB
	uploads storage.Uploader
}

func NewShopHandler(db *gorm.DB, uploads storage.Uploader) *ShopHandler {
	return &ShopHandler{db: db, uploads: uploads}
}

type UpdateShopRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	OpeningTime       *string `json:"opening_time"`
	ClosingTime       *string `json:"closing_time"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *ShopHandler) load(c *gin.Context) (*models.Shop, bool) {
	var shop models.Shop
	if err := h.db.WithContext(c.Request.Context()).
		First(&shop, "id = ?", middleware.ShopID(c)).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Loja não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_shop", "Erro ao buscar dados da loja.")
		return nil, false
	}
	return &shop, true
}

func (h *ShopHandler) Get(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Nome obrigatório.")
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		shop.Address = strings.TrimSpace(*req.Address)
	}

	// Horários são normalizados para HH:MM; fechamento <= abertura vira o dia.
	if req.OpeningTime != nil {
		clk, err := hours.ParseClock(*req.OpeningTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_opening_time", "Horário de abertura inválido.")
			return
		}
		shop.OpeningTime = clk.String()
	}
	if req.ClosingTime != nil {
		clk, err := hours.ParseClock(*req.ClosingTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_closing_time", "Horário de fechamento inválido.")
			return
		}
		shop.ClosingTime = clk.String()
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Erro ao salvar as configurações da loja.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *ShopHandler) UploadLogo(c *gin.Context) {
	shop, ok := h.load(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.uploads, "shops/"+shop.ID.String())
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(shop).
		Update("logo_url", url).Error; err != nil {

		httperr.Internal(c, "failed_to_update_shop", "Erro ao salvar as configurações da loja.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
