package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// --------------------------------------------------
// Sessão do usuário autenticado
// --------------------------------------------------

// loadUser reads the authenticated user. On failure the response is
// already written.
func loadUser(c *gin.Context, users *repository.UserGormRepository, log *logging.Logger) (*models.User, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		httperr.Unauthorized(c, "user_not_in_context", "Sessão inválida.")
		return nil, false
	}

	u, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.Unauthorized(c, "user_not_found", "Sessão inválida. Faça login novamente.")
			return nil, false
		}
		respondError(c, log, err)
		return nil, false
	}
	return u, true
}

func sessionOf(u *models.User) booking.Session {
	return booking.Session{
		UserID: u.ID,
		Name:   u.Name,
		Unit:   u.Unit,
		Gender: booking.Gender(u.Gender),
		Role:   booking.Role(u.Role),
	}
}

func loadSession(c *gin.Context, users *repository.UserGormRepository, log *logging.Logger) (booking.Session, bool) {
	u, ok := loadUser(c, users, log)
	if !ok {
		return booking.Session{}, false
	}
	return sessionOf(u), true
}

// respondError maps business errors to their status and everything else
// to 500.
func respondError(c *gin.Context, log *logging.Logger, err error) {
	if httperr.FromError(c, err) {
		return
	}
	log.Error("request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}
