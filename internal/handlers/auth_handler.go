package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	users  *repository.UserGormRepository
	config *config.Config
	audit  *audit.Dispatcher
	log    *logging.Logger
}

func NewAuthHandler(
	users *repository.UserGormRepository,
	cfg *config.Config,
	audit *audit.Dispatcher,
	log *logging.Logger,
) *AuthHandler {
	return &AuthHandler{users: users, config: cfg, audit: audit, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates a resident account. The role is never taken from
// the request.
func (h *AuthHandler) Register(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if strings.TrimSpace(req.Unit) == "" || strings.TrimSpace(req.Gender) == "" {
		httperr.FromError(c, httperr.ErrBusiness("missing_fields"))
		return
	}

	user := models.User{
		ID:   newUserID(),
		Unit: strings.TrimSpace(req.Unit),
		Role: string(booking.RoleResident),
	}

	if err := req.applyCommon(&user, userRules{passwordRequired: true, checkDomain: h.config.VerifyEmailDomain}); err != nil {
		respondError(c, h.log, err)
		return
	}

	gender, err := parseGender(req.Gender, true)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	user.Gender = gender

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  user.ID,
		Action:   audit.ActionUserCreated,
		Entity:   "user",
		EntityID: user.ID,
		Metadata: map[string]string{"source": "register"},
	})

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		respondError(c, h.log, err)
		return
	}

	if !validators.CheckPassword(user.PasswordHash, req.Password) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, booking.Role(user.Role), time.Now())
	if err != nil {
		h.log.Error("token signing failed", "error", err)
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(status, gin.H{
		"user":  dto.FromUser(user),
		"token": token,
	})
}
