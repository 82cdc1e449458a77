package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
)

// uuidParam lê um parâmetro de rota. Responde 400 e devolve false quando inválido.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUID trata "" como ausente.
func optionalUUID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// shopBySlug responde 404 quando a loja não existe.
func shopBySlug(c *gin.Context, db *gorm.DB) (*models.Shop, bool) {
	var shop models.Shop
	if err := db.WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Loja não encontrada.")
			return nil, false
		}
		httperr.Respond(c, httperr.Upstream("shop", err))
		return nil, false
	}
	return &shop, true
}
