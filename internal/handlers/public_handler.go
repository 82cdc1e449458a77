package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/shop-queue/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página da loja, sem login.
type PublicHandler struct {
	db     *gorm.DB
	join   *queue.JoinQueue
	wait   *queue.GetWaitEstimate
	create *appointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	join *queue.JoinQueue,
	wait *queue.GetWaitEstimate,
	create *appointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:     db,
		join:   join,
		wait:   wait,
		create: create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicJoinQueueRequest struct {
	BarberID    string   `json:"barber_id" binding:"required"`
	ClientName  string   `json:"client_name" binding:"required"`
	ClientPhone string   `json:"client_phone"`
	ServiceIDs  []string `json:"service_ids"`
}

type PublicCreateAppointmentRequest struct {
	BarberID    string   `json:"barber_id" binding:"required"`
	ClientName  string   `json:"client_name" binding:"required"`
	ClientPhone string   `json:"client_phone" binding:"required"`
	ClientEmail string   `json:"client_email"`
	ServiceIDs  []string `json:"service_ids" binding:"required"`
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string   `json:"time" binding:"required"` // HH:mm
	Notes       string   `json:"notes"`
}

////////////////////////////////////////////////////////
// SHOP PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) Shop(c *gin.Context) {
	shop, ok := shopBySlug(c, h.db)
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var barbers []models.Barber
	if err := db.
		Where("shop_id = ? AND active = true", shop.ID).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Respond(c, httperr.Upstream("barbers", err))
		return
	}

	var services []models.Service
	if err := db.
		Where("shop_id = ? AND active = true", shop.ID).
		Order("name ASC").
		Find(&services).Error; err != nil {

		httperr.Respond(c, httperr.Upstream("services", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":     shop,
		"barbers":  barbers,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// QUEUE
////////////////////////////////////////////////////////

func (h *PublicHandler) JoinQueue(c *gin.Context) {
	shop, ok := shopBySlug(c, h.db)
	if !ok {
		return
	}

	var req PublicJoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	barberID, err := uuid.Parse(req.BarberID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Profissional inválido.")
		return
	}

	serviceIDs, err := parseUUIDs(req.ServiceIDs)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidServiceSet, "Serviço inválido para esta loja.")
		return
	}

	phone := ""
	if strings.TrimSpace(req.ClientPhone) != "" {
		p, ok := validators.NormalizePhone(req.ClientPhone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return
		}
		phone = p
	}

	entry, err := h.join.Execute(c.Request.Context(), queue.JoinQueueInput{
		ShopID:         shop.ID,
		BarberID:       barberID,
		ClientName:     req.ClientName,
		ClientPhone:    phone,
		ServiceIDs:     serviceIDs,
		RequireWorking: true,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *PublicHandler) WaitEstimate(c *gin.Context) {
	shop, ok := shopBySlug(c, h.db)
	if !ok {
		return
	}

	barberID, ok := uuidParam(c, "barberId")
	if !ok {
		return
	}

	est, err := h.wait.Execute(c.Request.Context(), shop.ID, barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, est)
}

////////////////////////////////////////////////////////
// APPOINTMENTS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := shopBySlug(c, h.db)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	barberID, err := uuid.Parse(req.BarberID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Profissional inválido.")
		return
	}

	serviceIDs, err := parseUUIDs(req.ServiceIDs)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidServiceSet, "Serviço inválido para esta loja.")
		return
	}

	phone, ok := validators.NormalizePhone(req.ClientPhone)
	if !ok {
		httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
		return
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email != "" && !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		ShopID:      shop.ID,
		BarberID:    barberID,
		ClientName:  req.ClientName,
		ClientPhone: phone,
		ClientEmail: email,
		ServiceIDs:  serviceIDs,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}
