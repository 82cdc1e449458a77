package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shop-queue/internal/dto"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/httpresp"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/timezone"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/appointment"
	"github.com/BruksfildServices01/shop-queue/internal/usecase/queue"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	loc      *time.Location
	list     *appointment.ListAppointments
	cancel   *appointment.CancelAppointment
	complete *queue.CompleteAppointment
	noShow   *appointment.MarkAppointmentNoShow
}

func NewAppointmentHandler(
	loc *time.Location,
	list *appointment.ListAppointments,
	cancel *appointment.CancelAppointment,
	complete *queue.CompleteAppointment,
	noShow *appointment.MarkAppointmentNoShow,
) *AppointmentHandler {
	return &AppointmentHandler{
		loc:      loc,
		list:     list,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
	}
}

// ======================================================
// LIST
// ======================================================

// List aceita ?date=YYYY-MM-DD ou ?year=&month=, com barber_id opcional.
// Sem filtro de data, lista o dia de hoje.
func (h *AppointmentHandler) List(c *gin.Context) {
	shopID := middleware.ShopID(c)

	barberID, err := optionalUUID(c.Query("barber_id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Profissional inválido.")
		return
	}

	var out []dto.AppointmentListDTO

	if c.Query("month") != "" {
		year, err1 := strconv.Atoi(c.Query("year"))
		month, err2 := strconv.Atoi(c.Query("month"))
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Mês inválido.")
			return
		}
		out, err = h.list.ByMonth(c.Request.Context(), shopID, barberID, year, month)
	} else {
		date := timezone.NowIn(h.loc)
		if raw := c.Query("date"); raw != "" {
			date, err = timezone.ParseDate(raw, h.loc)
			if err != nil {
				httperr.BadRequest(c, httperr.CodeInvalidRequest, "Data inválida.")
				return
			}
		}
		out, err = h.list.ByDate(c.Request.Context(), shopID, barberID, date)
	}

	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// TRANSITIONS
// ======================================================

type transitionFunc func(
	ctx context.Context,
	shopID uuid.UUID,
	actorID *uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error)

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

// Complete só vale para agendamento em atendimento: conclui a entrada da
// fila vinculada e gera a fatura.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.complete.Execute(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":   out.Entry,
		"invoice": out.Invoice,
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.transition(c, h.noShow.Execute)
}

func (h *AppointmentHandler) transition(c *gin.Context, run transitionFunc) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), middleware.ShopID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
