package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

type MeHandler struct {
	users         *repository.UserGormRepository
	notifications *notify.Dispatcher
	cache         UserCache
	audit         *audit.Dispatcher
	log           *logging.Logger
	checkDomain   bool
}

func NewMeHandler(
	users *repository.UserGormRepository,
	notifications *notify.Dispatcher,
	cache UserCache,
	audit *audit.Dispatcher,
	log *logging.Logger,
	checkDomain bool,
) *MeHandler {
	return &MeHandler{
		users:         users,
		notifications: notifications,
		cache:         cache,
		audit:         audit,
		log:           log,
		checkDomain:   checkDomain,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := loadUser(c, h.users, h.log)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}

// UpdateMe edits the caller's profile. An empty unit keeps the stored one.
// Only professionals have a description.
func (h *MeHandler) UpdateMe(c *gin.Context) {
	user, ok := loadUser(c, h.users, h.log)
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.applyCommon(user, userRules{checkDomain: h.checkDomain}); err != nil {
		respondError(c, h.log, err)
		return
	}

	if unit := strings.TrimSpace(req.Unit); unit != "" {
		user.Unit = unit
	}

	isProf := user.Role == string(booking.RoleProfessional)
	if isProf {
		user.Description = strings.TrimSpace(req.Description)
	}

	if err := h.users.Save(c.Request.Context(), user); err != nil {
		respondError(c, h.log, err)
		return
	}

	if isProf && h.cache != nil {
		h.cache.InvalidateUsers(c.Request.Context())
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  user.ID,
		Action:   audit.ActionUserUpdated,
		Entity:   "user",
		EntityID: user.ID,
		Metadata: map[string]string{"source": "profile"},
	})

	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}

// NextNotification hands out the oldest unread message and marks the
// rest as read.
func (h *MeHandler) NextNotification(c *gin.Context) {
	user, ok := loadUser(c, h.users, h.log)
	if !ok {
		return
	}

	text, found, err := h.notifications.ConsumeNextUnread(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}
