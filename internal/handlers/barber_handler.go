package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-queue/internal/audit"
	"github.com/BruksfildServices01/shop-queue/internal/httperr"
	"github.com/BruksfildServices01/shop-queue/internal/httpresp"
	"github.com/BruksfildServices01/shop-queue/internal/middleware"
	"github.com/BruksfildServices01/shop-queue/internal/models"
	"github.com/BruksfildServices01/shop-queue/internal/storage"
	"github.com/BruksfildServices01/shop-queue/internal/validators"
)

const maxBreakMinutes = 240

// BarberHandler cuida da escala do dia: quem trabalha e quem está em pausa.
type BarberHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	uploads storage.Uploader
	now     func() time.Time
}

func NewBarberHandler(db *gorm.DB, audit *audit.Dispatcher, uploads storage.Uploader) *BarberHandler {
	return &BarberHandler{
		db:      db,
		audit:   audit,
		uploads: uploads,
		now:     time.Now,
	}
}

type CreateBarberRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type WorkingTodayRequest struct {
	Working *bool `json:"working" binding:"required"`
}

// Minutes ausente = pausa sem fim previsto.
type StartBreakRequest struct {
	Minutes *int `json:"minutes"`
}

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("shop_id = ?", middleware.ShopID(c))

	if c.Query("all") != "true" {
		q = q.Where("active = ?", true)
	}

	var barbers []models.Barber
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Nome obrigatório.")
		return
	}

	phone := ""
	if strings.TrimSpace(req.Phone) != "" {
		p, ok := validators.NormalizePhone(req.Phone)
		if !ok {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return
		}
		phone = p
	}

	b := models.Barber{
		ShopID: middleware.ShopID(c),
		Name:   name,
		Phone:  phone,
		Active: true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&b).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar profissional.")
		return
	}

	h.record(c, "barber_created", &b, nil)
	c.JSON(http.StatusCreated, b)
}

func (h *BarberHandler) find(c *gin.Context) (*models.Barber, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var b models.Barber
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND shop_id = ?", id, middleware.ShopID(c)).
		First(&b).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barber_not_found", "Profissional não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barber", "Erro ao buscar profissional.")
		return nil, false
	}
	return &b, true
}

func (h *BarberHandler) SetWorking(c *gin.Context) {
	b, ok := h.find(c)
	if !ok {
		return
	}

	var req WorkingTodayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
		return
	}

	updates := map[string]interface{}{"is_working_today": *req.Working}
	if !*req.Working {
		updates["is_on_break"] = false
		updates["break_end_time"] = nil
	}

	if !h.update(c, b, updates) {
		return
	}
	b.IsWorkingToday = *req.Working
	if !*req.Working {
		b.IsOnBreak = false
		b.BreakEndTime = nil
	}

	h.record(c, "barber_working_changed", b, map[string]any{"working": *req.Working})
	c.JSON(http.StatusOK, b)
}

// canStartBreak: só quem está na escala do dia pode entrar em pausa.
func canStartBreak(b *models.Barber) error {
	if !b.IsWorkingToday {
		return httperr.ErrBusinessf(httperr.CodeInvalidState, "barber %s is not working today", b.ID)
	}
	return nil
}

func (h *BarberHandler) StartBreak(c *gin.Context) {
	b, ok := h.find(c)
	if !ok {
		return
	}
	if err := canStartBreak(b); err != nil {
		httperr.Respond(c, err)
		return
	}

	var req StartBreakRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
			return
		}
	}

	var end *time.Time
	if req.Minutes != nil {
		if *req.Minutes <= 0 || *req.Minutes > maxBreakMinutes {
			httperr.BadRequest(c, "invalid_break_minutes", "Duração da pausa inválida.")
			return
		}
		t := h.now().Add(time.Duration(*req.Minutes) * time.Minute)
		end = &t
	}

	if !h.update(c, b, map[string]interface{}{
		"is_on_break":    true,
		"break_end_time": end,
	}) {
		return
	}
	b.IsOnBreak = true
	b.BreakEndTime = end

	h.record(c, "barber_break_started", b, map[string]any{"minutes": req.Minutes})
	c.JSON(http.StatusOK, b)
}

func (h *BarberHandler) EndBreak(c *gin.Context) {
	b, ok := h.find(c)
	if !ok {
		return
	}

	if !h.update(c, b, map[string]interface{}{
		"is_on_break":    false,
		"break_end_time": nil,
	}) {
		return
	}
	b.IsOnBreak = false
	b.BreakEndTime = nil

	h.record(c, "barber_break_ended", b, nil)
	c.JSON(http.StatusOK, b)
}

func (h *BarberHandler) UploadAvatar(c *gin.Context) {
	b, ok := h.find(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.uploads, "barbers/"+b.ID.String())
	if !ok {
		return
	}

	if !h.update(c, b, map[string]interface{}{"avatar_url": url}) {
		return
	}
	b.AvatarURL = url

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func (h *BarberHandler) update(c *gin.Context, b *models.Barber, updates map[string]interface{}) bool {
	if err := h.db.WithContext(c.Request.Context()).
		Model(b).
		Updates(updates).Error; err != nil {

		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar profissional.")
		return false
	}
	return true
}

func (h *BarberHandler) record(c *gin.Context, action string, b *models.Barber, meta map[string]any) {
	ev := audit.Event{
		ShopID:   b.ShopID,
		ActorID:  middleware.UserID(c),
		Action:   action,
		Entity:   "barber",
		EntityID: &b.ID,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	h.audit.Dispatch(ev)
}
