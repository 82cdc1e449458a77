package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List filtra por action, entity e entity_id; sempre restrito à loja do token.
func (h *AuditLogsHandler) List(c *gin.Context) {
	entityID, err := optionalUUID(c.Query("entity_id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Identificador inválido.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.logs.List(c.Request.Context(), audit.ListFilter{
		ShopID:   middleware.ShopID(c),
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: entityID,
		Limit:    limit,
	})
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": logs,
	})
}
