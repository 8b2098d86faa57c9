package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medcare-api/internal/auth"
	"github.com/BruksfildServices01/medcare-api/internal/config"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
	"github.com/BruksfildServices01/medcare-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	sender notify.Sender
	clock  timezone.Clock
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sender notify.Sender) *AuthHandler {
	return &AuthHandler{
		db:     db,
		config: cfg,
		sender: sender,
		clock:  timezone.SystemClock{},
	}
}

// --------- Requests ---------

type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func (a AddressRequest) model() models.Address {
	return models.Address{
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		Complement: strings.TrimSpace(a.Complement),
		District:   strings.TrimSpace(a.District),
		City:       strings.TrimSpace(a.City),
		State:      strings.ToUpper(strings.TrimSpace(a.State)),
		PostalCode: strings.TrimSpace(a.PostalCode),
	}
}

type RegisterRequest struct {
	Name      string         `json:"name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=6"`
	CPF       string         `json:"cpf" binding:"required"`
	Sex       string         `json:"sex"`
	BirthDate string         `json:"birth_date"`
	Phone     string         `json:"phone"`
	Address   AddressRequest `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// --------- Register / Login ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	cpf, ok := validators.NormalizeCPF(req.CPF)
	if !ok {
		httperr.BadRequest(c, "invalid_cpf", "CPF inválido.")
		return
	}

	if req.BirthDate != "" {
		if _, err := timezone.ParseDate(req.BirthDate); err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "Data de nascimento inválida.")
			return
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
		CPF:          cpf,
		Sex:          strings.TrimSpace(req.Sex),
		BirthDate:    strings.TrimSpace(req.BirthDate),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      req.Address.model(),
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err, "") {
			httperr.Conflict(c, "user_already_exists", "E-mail ou CPF já cadastrado.")
			return
		}
		log.Printf("[register] %v", err)
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	token, err := auth.IssueToken(h.config.JWTSecret, user.ID, h.clock.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", auth.NormalizeEmail(req.Email)).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := auth.IssueToken(h.config.JWTSecret, user.ID, h.clock.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// --------- Password reset ---------

func (h *AuthHandler) RequestResetCode(c *gin.Context) {
	var req ResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ctx := c.Request.Context()
	email := auth.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "email_not_found", "E-mail não cadastrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	code, err := auth.NewResetCode()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_code", "Erro ao gerar código.")
		return
	}

	now := h.clock.Now()
	reset := models.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(auth.ResetCodeTTL),
	}

	// only the newest code is live
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PasswordReset{}).
			Where("email = ? AND used = ?", email, false).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Create(&reset).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_store_code", "Erro ao gerar código.")
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, h.config.NotifyTimeout)
	defer cancel()

	if err := h.sender.Send(
		sendCtx,
		notify.Recipient{Name: user.Name, Email: user.Email},
		notify.KindPasswordResetCode,
		notify.ResetCodePayload{
			Name:          user.Name,
			Code:          code,
			ExpiryMinutes: int(auth.ResetCodeTTL / time.Minute),
			ResetURL:      resetURL(h.config.PublicAppURL, email),
		},
	); err != nil {
		log.Printf("[reset-code] send to %s failed: %v", email, err)
		httperr.ServiceUnavailable(c, "email_not_sent", "Não foi possível enviar o e-mail.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Código enviado para o e-mail cadastrado.",
		"expires_at": reset.ExpiresAt,
	})
}

func resetURL(base, email string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/reset-password?email=" + url.QueryEscape(email)
}

var errCodeUsed = errors.New("reset code already used")

// activeReset loads the live code for email and checks code against it,
// or writes the error reply. Each wrong guess counts against the code.
func (h *AuthHandler) activeReset(c *gin.Context, email, code string) (*models.PasswordReset, bool) {
	ctx := c.Request.Context()

	var reset models.PasswordReset
	err := h.db.WithContext(ctx).
		Where("email = ? AND used = ?", email, false).
		Order("created_at DESC").
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.BadRequest(c, "invalid_code", "Código inválido.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return nil, false
	}

	if !h.clock.Now().Before(reset.ExpiresAt) {
		httperr.BadRequest(c, "code_expired", "Código expirado.")
		return nil, false
	}

	if reset.Attempts >= auth.MaxResetAttempts {
		httperr.TooManyRequests(c, "too_many_attempts", "Muitas tentativas. Solicite um novo código.")
		return nil, false
	}

	if subtle.ConstantTimeCompare([]byte(reset.Code), []byte(auth.NormalizeCode(code))) != 1 {
		if err := h.db.WithContext(ctx).
			Model(&models.PasswordReset{}).
			Where("id = ?", reset.ID).
			UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error; err != nil {
			log.Printf("[reset-code] attempt count for %s: %v", email, err)
		}
		httperr.BadRequest(c, "invalid_code", "Código inválido.")
		return nil, false
	}

	return &reset, true
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, ok := h.activeReset(c, auth.NormalizeEmail(req.Email), req.Code); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Código verificado com sucesso."})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	reset, ok := h.activeReset(c, email, req.Code)
	if !ok {
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		// only one request may consume the code
		used := tx.Model(&models.PasswordReset{}).
			Where("id = ? AND used = ?", reset.ID, false).
			Update("used", true)
		if used.Error != nil {
			return used.Error
		}
		if used.RowsAffected == 0 {
			return errCodeUsed
		}

		res := tx.Model(&models.User{}).
			Where("email = ?", email).
			Update("password_hash", hashed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errCodeUsed) {
			httperr.BadRequest(c, "invalid_code", "Código inválido.")
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_reset_password", "Erro ao atualizar senha.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha atualizada com sucesso."})
}
