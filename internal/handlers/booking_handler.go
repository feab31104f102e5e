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

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	users *repository.UserGormRepository
	log   *logging.Logger

	createUC   *ucBooking.CreateAppointment
	cancelUC   *ucBooking.CancelBooking
	listUC     *ucBooking.ListBookings
	calendarUC *ucBooking.DayCalendar
}

func NewBookingHandler(
	users *repository.UserGormRepository,
	log *logging.Logger,
	createUC *ucBooking.CreateAppointment,
	cancelUC *ucBooking.CancelBooking,
	listUC *ucBooking.ListBookings,
	calendarUC *ucBooking.DayCalendar,
) *BookingHandler {
	return &BookingHandler{
		users:      users,
		log:        log,
		createUC:   createUC,
		cancelUC:   cancelUC,
		listUC:     listUC,
		calendarUC: calendarUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ProfessionalID string `json:"prof_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Description    string `json:"description"`
	ManicureType   string `json:"manicure_type"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), session, ucBooking.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Description:    req.Description,
		ManicureType:   req.ManicureType,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.CreatedList(c, dto.FromAppointments(created))
}

// ======================================================
// LIST
// ======================================================

type dayBlocksResponse struct {
	Date   string           `json:"date"`
	Blocks []dto.BookingDTO `json:"blocks"`
}

func (h *BookingHandler) List(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	res, err := h.listUC.Execute(c.Request.Context(), session)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	body := gin.H{
		"upcoming": dto.FromEntries(res.Upcoming),
		"history":  dto.FromEntries(res.History),
	}

	if res.Blocks != nil {
		days := make([]dayBlocksResponse, 0, len(res.Blocks))
		for _, d := range res.Blocks {
			days = append(days, dayBlocksResponse{Date: d.Date, Blocks: dto.FromEntries(d.Blocks)})
		}
		body["blocks"] = days
	}

	c.JSON(http.StatusOK, body)
}

// ======================================================
// CANCEL
// ======================================================

// Cancel accepts the reason as ?reason= or in a JSON body.
func (h *BookingHandler) Cancel(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	reason := c.Query("reason")
	if reason == "" && c.Request.ContentLength > 0 {
		var req CancelBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
			return
		}
		reason = req.Reason
	}

	deleted, err := h.cancelUC.Execute(c.Request.Context(), session, c.Param("id"), reason)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": dto.FromEntries(deleted)})
}

// ======================================================
// CALENDAR
// ======================================================

type calendarEntryResponse struct {
	dto.BookingDTO
	Maca bool `json:"maca"`
}

type calendarRowResponse struct {
	Time    string                  `json:"time"`
	Entries []calendarEntryResponse `json:"entries"`
}

func (h *BookingHandler) Calendar(c *gin.Context) {
	session, ok := loadSession(c, h.users, h.log)
	if !ok {
		return
	}

	rows, err := h.calendarUC.Execute(c.Request.Context(), session, c.Query("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]calendarRowResponse, 0, len(rows))
	for _, r := range rows {
		row := calendarRowResponse{Time: r.Time, Entries: []calendarEntryResponse{}}
		for _, e := range r.Entries {
			row.Entries = append(row.Entries, calendarEntryResponse{BookingDTO: dto.FromEntry(e.Entry), Maca: e.Maca})
		}
		out = append(out, row)
	}

	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "rows": out})
}
