package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	deps Deps
}

func NewCancelBooking(deps Deps) *CancelBooking {
	return &CancelBooking{deps: deps.withDefaults()}
}

// Execute removes a booking, or both halves of a paired one. What the
// actor may touch is decided by role:
//
//	resident      own appointments
//	professional  appointments and blocks in their own agenda
//	admin         any appointment
func (uc *CancelBooking) Execute(
	ctx context.Context,
	session domain.Session,
	id string,
	reason string,
) ([]domain.Entry, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, httperr.ErrBusiness("missing_id")
	}

	scope, err := deleteScope(session)
	if err != nil {
		return nil, err
	}

	deleted, err := uc.deps.Repo.DeleteBooking(ctx, id, scope)
	if err != nil {
		return nil, err
	}

	first := deleted[0]
	reason = strings.TrimSpace(reason)

	// --------------------------------------------------
	// Aviso ao morador quando outra pessoa cancela
	// --------------------------------------------------
	if ap, ok := first.(*domain.Appointment); ok && session.Role != domain.RoleResident {
		if uc.deps.Notifier != nil {
			uc.deps.Notifier.Enqueue(ap.ClientID, CancellationText(ap, reason))
		}
	}

	uc.deps.Metrics.ObserveCancelled(string(session.Role), string(first.Kind()))

	uc.deps.Logger.Info("booking cancelled",
		"actor_id", session.UserID,
		"role", string(session.Role),
		"booking_id", first.EntryID(),
		"records", len(deleted),
	)

	uc.deps.Audit.Dispatch(audit.Event{
		ActorID:  session.UserID,
		Action:   audit.ActionBookingCancelled,
		Entity:   string(first.Kind()),
		EntityID: first.EntryID(),
		Metadata: map[string]any{
			"date":    first.Cell().Date,
			"time":    first.Cell().Time,
			"prof_id": first.Cell().ProfID,
			"reason":  reason,
			"records": len(deleted),
		},
	})

	return deleted, nil
}

func deleteScope(session domain.Session) (domain.DeleteScope, error) {
	switch session.Role {
	case domain.RoleResident:
		return domain.DeleteScope{ClientID: session.UserID, Kind: domain.KindAppointment}, nil
	case domain.RoleProfessional:
		return domain.DeleteScope{ProfID: session.UserID}, nil
	case domain.RoleAdmin:
		return domain.DeleteScope{Kind: domain.KindAppointment}, nil
	}
	return domain.DeleteScope{}, httperr.ErrForbidden("forbidden")
}

// CancellationText is the message a resident receives when staff cancels
// their reservation.
func CancellationText(ap *domain.Appointment, reason string) string {
	msg := fmt.Sprintf("Sua reserva de %s em %s foi cancelada.", ap.Time, timezone.FormatDateBR(ap.Date))
	if reason != "" {
		msg += " Motivo: " + reason
	}
	return msg
}
