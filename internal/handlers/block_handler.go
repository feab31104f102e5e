package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

type BlockHandler struct {
	users    *repository.UserGormRepository
	log      *logging.Logger
	createUC *ucBooking.CreateBlocks
	gridUC   *ucBooking.BlockGrid
}

func NewBlockHandler(
	users *repository.UserGormRepository,
	log *logging.Logger,
	createUC *ucBooking.CreateBlocks,
	gridUC *ucBooking.BlockGrid,
) *BlockHandler {
	return &BlockHandler{users: users, log: log, createUC: createUC, gridUC: gridUC}
}

type CreateBlocksRequest struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// Grid shows the caller's agenda for ?date=, one cell per label.
func (h *BlockHandler) Grid(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	grid, err := h.gridUC.Execute(c.Request.Context(), session, c.Query("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "slots": grid})
}

func (h *BlockHandler) Create(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	var req CreateBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), session, req.Date, req.Times)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.CreatedList(c, dto.FromEntries(created))
}
