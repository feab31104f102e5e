package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

type ProfessionalHandler struct {
	repo            booking.Repository
	users           *repository.UserGormRepository
	getAvailability *ucBooking.GetAvailability
	log             *logging.Logger
}

func NewProfessionalHandler(
	repo booking.Repository,
	users *repository.UserGormRepository,
	getAvailability *ucBooking.GetAvailability,
	log *logging.Logger,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		repo:            repo,
		users:           users,
		getAvailability: getAvailability,
		log:             log,
	}
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	profs, err := h.repo.ListProfessionals(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]dto.ProfessionalDTO, 0, len(profs))
	for _, p := range profs {
		out = append(out, dto.FromProfessional(p))
	}
	httpresp.List(c, out)
}

// Availability classifies every time label of ?date= for the professional,
// from the point of view of the calling resident.
func (h *ProfessionalHandler) Availability(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	res, err := h.getAvailability.Execute(
		c.Request.Context(),
		session,
		c.Param("id"),
		c.Query("date"),
		c.Query("manicure_type"),
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professional":  dto.FromProfessional(res.Professional),
		"date":          res.Date,
		"manicure_type": res.ManicureType,
		"paired":        res.Paired,
		"slots":         res.Slots,
	})
}
