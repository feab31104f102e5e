package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AdminUserHandler struct {
	users *repository.UserGormRepository
	cache UserCache
	audit *audit.Dispatcher
	log   *logging.Logger
}

func NewAdminUserHandler(
	users *repository.UserGormRepository,
	cache UserCache,
	audit *audit.Dispatcher,
	log *logging.Logger,
) *AdminUserHandler {
	return &AdminUserHandler{users: users, cache: cache, audit: audit, log: log}
}

// ======================================================
// LIST
// ======================================================

// List returns residents and professionals, filtered by name or unit.
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.FromUser(&users[i]))
	}
	httpresp.List(c, out)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	user := models.User{ID: newUserID()}
	if err := h.apply(&user, &req, true); err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.changed(c, audit.ActionUserCreated, &user)
	c.JSON(http.StatusCreated, gin.H{"user": dto.FromUser(&user)})
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.apply(user, &req, false); err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.users.Save(c.Request.Context(), user); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.changed(c, audit.ActionUserUpdated, user)
	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}

// ======================================================
// DELETE
// ======================================================

// Delete removes the account. Existing bookings keep the denormalized
// names and stay visible in the agendas.
func (h *AdminUserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == c.GetString(middleware.ContextUserID) {
		httperr.FromError(c, httperr.ErrForbidden("forbidden"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	if h.cache != nil {
		h.cache.InvalidateUsers(c.Request.Context())
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  c.GetString(middleware.ContextUserID),
		Action:   audit.ActionUserDeleted,
		Entity:   "user",
		EntityID: id,
	})

	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (h *AdminUserHandler) apply(u *models.User, req *UserRequest, creating bool) error {
	if err := req.applyCommon(u, userRules{passwordRequired: creating}); err != nil {
		return err
	}

	role := booking.RoleResident
	if !creating && u.Role != "" {
		role = booking.Role(u.Role)
	}
	if raw := strings.TrimSpace(req.Role); raw != "" {
		r, err := booking.ParseRole(raw)
		if err != nil {
			return err
		}
		role = r
	}

	// sem gênero no payload de edição, mantém o já salvo
	rawGender := req.Gender
	if strings.TrimSpace(rawGender) == "" && !creating {
		rawGender = u.Gender
	}
	gender, err := parseGender(rawGender, role != booking.RoleAdmin)
	if err != nil {
		return err
	}

	u.Role = string(role)
	u.Gender = gender
	u.Unit = strings.TrimSpace(req.Unit)

	// maca, manicure e descrição só fazem sentido para profissionais
	if role == booking.RoleProfessional {
		u.Description = strings.TrimSpace(req.Description)
		u.Maca = req.Maca
		u.Manicure = req.Manicure
	} else {
		u.Description = ""
		u.Maca = false
		u.Manicure = false
	}
	return nil
}

func (h *AdminUserHandler) changed(c *gin.Context, action string, u *models.User) {
	if h.cache != nil {
		h.cache.InvalidateUsers(c.Request.Context())
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  c.GetString(middleware.ContextUserID),
		Action:   action,
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]any{"role": u.Role, "maca": u.Maca, "manicure": u.Manicure},
	})
}
