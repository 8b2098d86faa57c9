package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/httpresp"
	"github.com/BruksfildServices01/medcare-api/internal/middleware"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// List returns the caller's own trail. Optional filters: action,
// entity, from/to (civil dates, inclusive).
func (h *AuditLogsHandler) List(c *gin.Context) {
	p := parsePage(c, 50, 200)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("user_id = ?", middleware.UserID(c))

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if from, err := timezone.ParseDate(c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}
	if to, err := timezone.ParseDate(c.Query("to")); err == nil {
		_, end := timezone.DayBounds(to)
		q = q.Where("created_at < ?", end)
	}

	out := auditPage{Page: p.page, Limit: p.limit}

	if err := q.Count(&out.Total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	if err := q.
		Order("created_at DESC").
		Limit(p.limit).
		Offset(p.offset()).
		Find(&out.Logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	if out.Logs == nil {
		out.Logs = []models.AuditLog{}
	}
	httpresp.OK(c, out)
}
