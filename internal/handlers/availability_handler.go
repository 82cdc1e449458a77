package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc *appointment.GetAvailability
}

func NewAvailabilityHandler(uc *appointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

type AvailabilityRequest struct {
	ShopID     string   `json:"shopId"`
	ServiceIDs []string `json:"serviceIds"`
	Date       string   `json:"date"` // YYYY-MM-DD
	BarberID   string   `json:"barberId"`
}

// Slots: POST /api/public/availability
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Loja inválida.")
		return
	}

	serviceIDs, err := parseUUIDs(req.ServiceIDs)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidServiceSet, "Serviço inválido para esta loja.")
		return
	}

	barberID, err := optionalUUID(req.BarberID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Profissional inválido.")
		return
	}

	slots, err := h.uc.Execute(c.Request.Context(), appointment.AvailabilityInput{
		ShopID:     shopID,
		ServiceIDs: serviceIDs,
		Date:       req.Date,
		BarberID:   barberID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{AvailableSlots: slots})
}
