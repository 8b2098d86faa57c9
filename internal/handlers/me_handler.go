package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/middleware"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type MeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMeHandler(db *gorm.DB, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, audit: audit}
}

// Email and CPF cannot be changed here.
type UpdateMeRequest struct {
	Name      string         `json:"name" binding:"required"`
	Sex       string         `json:"sex"`
	BirthDate string         `json:"birth_date"`
	Phone     string         `json:"phone"`
	Address   AddressRequest `json:"address"`
}

func (h *MeHandler) loadUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		First(&user, middleware.UserID(c)).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return nil, false
	}
	return &user, true
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.BirthDate != "" {
		if _, err := timezone.ParseDate(req.BirthDate); err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
	}

	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Sex = strings.TrimSpace(req.Sex)
	user.BirthDate = strings.TrimSpace(req.BirthDate)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Address = req.Address.model()

	if err := h.db.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar perfil.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}
