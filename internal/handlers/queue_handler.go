package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/shop-queue/internal/domain/queue"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/httpresp"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/shop-queue/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// QueueHandler é o painel da fila, operado pela equipe da loja.
type QueueHandler struct {
	list    *queue.ListQueue
	join    *queue.JoinQueue
	start   *queue.StartService
	done    *queue.MarkDone
	noShow  *queue.MarkNoShow
	requeue *queue.Requeue
	remove  *queue.DeleteEntry
	checkIn *queue.CheckInAppointment
}

type QueueUseCases struct {
	List    *queue.ListQueue
	Join    *queue.JoinQueue
	Start   *queue.StartService
	Done    *queue.MarkDone
	NoShow  *queue.MarkNoShow
	Requeue *queue.Requeue
	Delete  *queue.DeleteEntry
	CheckIn *queue.CheckInAppointment
}

func NewQueueHandler(uc QueueUseCases) *QueueHandler {
	return &QueueHandler{
		list:    uc.List,
		join:    uc.Join,
		start:   uc.Start,
		done:    uc.Done,
		noShow:  uc.NoShow,
		requeue: uc.Requeue,
		remove:  uc.Delete,
		checkIn: uc.CheckIn,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type JoinQueueRequest struct {
	BarberID    string   `json:"barber_id" binding:"required"`
	ClientName  string   `json:"client_name" binding:"required"`
	ClientPhone string   `json:"client_phone"`
	ServiceIDs  []string `json:"service_ids"`
}

type StartServiceRequest struct {
	NotifyEnabled bool `json:"notifyEnabled"`
}

// ======================================================
// LIST
// ======================================================

func (h *QueueHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, err := optionalUUID(c.Query("barber_id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Profissional inválido.")
		return
	}

	var statuses []domain.Status
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, ok := domain.ParseStatus(strings.TrimSpace(part))
			if !ok {
				httperr.BadRequest(c, httperr.CodeInvalidRequest, "Status inválido.")
				return
			}
			statuses = append(statuses, st)
		}
	}

	entries, err := h.list.Execute(c.Request.Context(), shopID, barberID, statuses)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// JOIN (balcão)
// ======================================================

func (h *QueueHandler) Join(c *gin.Context) {
	var req JoinQueueRequest
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
		ShopID:      middleware.ShopID(c),
		BarberID:    barberID,
		ActorID:     middleware.UserID(c),
		ClientName:  req.ClientName,
		ClientPhone: phone,
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *QueueHandler) Start(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req StartServiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
			return
		}
	}

	out, err := h.start.Execute(c.Request.Context(), queue.StartServiceInput{
		ShopID:        middleware.ShopID(c),
		EntryID:       id,
		ActorID:       middleware.UserID(c),
		NotifyEnabled: req.NotifyEnabled,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":    out.Entry,
		"notified": out.NotifiedID,
	})
}

func (h *QueueHandler) Done(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.done.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":   out.Entry,
		"invoice": out.Invoice,
	})
}

func (h *QueueHandler) NoShow(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.noShow.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *QueueHandler) Requeue(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.requeue.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *QueueHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckIn: o cliente agendado chega e entra na fila do profissional.
func (h *QueueHandler) CheckIn(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.checkIn.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}
