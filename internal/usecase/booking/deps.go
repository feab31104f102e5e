package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Notifier delivers a short text to a user's inbox. Delivery is best
// effort and never fails the caller.
type Notifier interface {
	Enqueue(recipientID, text string)
}

// Deps is shared by every booking use case.
type Deps struct {
	Repo     domain.Repository
	Schedule domain.Schedule
	Location *time.Location

	Audit    *audit.Dispatcher
	Notifier Notifier
	Metrics  *metrics.BookingMetrics
	Logger   *logging.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) today() string {
	return timezone.Today(d.Now(), d.Location)
}

// checkDate rejects malformed dates and dates before today.
func (d Deps) checkDate(date string) error {
	if date == "" {
		return httperr.ErrBusiness("date_required")
	}
	if _, err := timezone.ParseDate(date, d.Location); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	if date < d.today() {
		return httperr.ErrBusiness("date_in_past")
	}
	return nil
}
