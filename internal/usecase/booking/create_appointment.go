package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProfessionalID string
	Date           string
	Time           string
	Description    string
	ManicureType   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	session domain.Session,
	in CreateAppointmentInput,
) ([]*domain.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Solicitante
	// --------------------------------------------------
	if session.Role != domain.RoleResident {
		return nil, httperr.ErrForbidden("forbidden")
	}

	// --------------------------------------------------
	// 2️⃣ Entrada
	// --------------------------------------------------
	in.ProfessionalID = strings.TrimSpace(in.ProfessionalID)
	in.Time = strings.TrimSpace(in.Time)

	if in.ProfessionalID == "" || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if err := uc.deps.checkDate(in.Date); err != nil {
		return nil, err
	}

	if !uc.deps.Schedule.Contains(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 3️⃣ Profissional e serviço
	// --------------------------------------------------
	prof, err := uc.deps.Repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	mt, err := resolveManicure(prof, in.ManicureType)
	if err != nil {
		return nil, err
	}

	paired := domain.IsPairedService(prof, mt)

	slot := domain.SlotStatus{Time: in.Time}
	if paired {
		next, ok := uc.deps.Schedule.Next(in.Time)
		if !ok {
			uc.conflict(session, in, domain.SlotInsufficientPair)
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		slot.PairTime = next
	}

	entries := domain.PlanAppointment(domain.AppointmentPlan{
		Requester:    session,
		Professional: prof,
		Date:         in.Date,
		Slot:         slot,
		Description:  in.Description,
		ManicureType: mt,
	})

	// --------------------------------------------------
	// 4️⃣ Revalidação + gravação (mesma transação)
	// --------------------------------------------------
	var rejected domain.SlotState

	err = uc.deps.Repo.CreateBookings(ctx, in.Date, entries, func(snap domain.Snapshot) error {
		st, err := domain.CheckSlot(domain.ClassifyInput{
			Schedule:        uc.deps.Schedule,
			Professional:    prof,
			RequesterGender: session.Gender,
			Paired:          paired,
			Entries:         snap.Entries,
			MacaProfIDs:     snap.MacaProfIDs,
		}, in.Time)
		if err != nil {
			return err
		}
		if !st.Available() || st.PairTime != slot.PairTime {
			rejected = st.State
			return httperr.ErrConflict("slot_unavailable")
		}
		return nil
	})
	if err != nil {
		if httperr.KindOf(err) == httperr.KindConflict {
			if rejected == "" {
				rejected = "unique_violation"
			}
			uc.conflict(session, in, rejected)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Métricas + auditoria
	// --------------------------------------------------
	uc.deps.Metrics.ObserveCreated(string(domain.KindAppointment), paired, 1)

	out := make([]*domain.Appointment, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.(*domain.Appointment))
	}

	uc.deps.Audit.Dispatch(audit.Event{
		ActorID:  session.UserID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: out[0].ID,
		Metadata: map[string]any{
			"prof_id":       prof.ID,
			"date":          in.Date,
			"time":          out[0].TimeLabel(),
			"manicure_type": string(mt),
		},
	})

	return out, nil
}

func (uc *CreateAppointment) conflict(session domain.Session, in CreateAppointmentInput, state domain.SlotState) {
	uc.deps.Metrics.ObserveConflict(string(state))
	uc.deps.Logger.Info("booking rejected",
		"client_id", session.UserID,
		"prof_id", in.ProfessionalID,
		"date", in.Date,
		"time", in.Time,
		"state", string(state),
	)
	uc.deps.Audit.Dispatch(audit.Event{
		ActorID:  session.UserID,
		Action:   audit.ActionBookingConflict,
		Entity:   "booking",
		Metadata: map[string]string{"prof_id": in.ProfessionalID, "date": in.Date, "time": in.Time, "state": string(state)},
	})
}
