package booking

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ======================================================
// OUTPUT
// ======================================================

type Availability struct {
	Professional domain.Professional
	Date         string
	ManicureType domain.ManicureType
	Paired       bool
	Slots        []domain.SlotStatus
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps.withDefaults()}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	session domain.Session,
	profID string,
	date string,
	manicureType string,
) (*Availability, error) {

	if err := uc.deps.checkDate(date); err != nil {
		return nil, err
	}

	prof, err := uc.deps.Repo.GetProfessional(ctx, profID)
	if err != nil {
		return nil, err
	}

	mt, err := resolveManicure(prof, manicureType)
	if err != nil {
		return nil, err
	}

	// leituras podem vir do cache; a validação final relê o banco
	entries, err := uc.deps.Repo.ListBookingsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	profs, err := uc.deps.Repo.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}

	paired := domain.IsPairedService(prof, mt)

	slots := domain.Classify(domain.ClassifyInput{
		Schedule:        uc.deps.Schedule,
		Professional:    prof,
		RequesterGender: session.Gender,
		Paired:          paired,
		Entries:         entries,
		MacaProfIDs:     domain.MacaSet(profs),
	})

	return &Availability{
		Professional: prof,
		Date:         date,
		ManicureType: mt,
		Paired:       paired,
		Slots:        slots,
	}, nil
}

func resolveManicure(prof domain.Professional, raw string) (domain.ManicureType, error) {
	mt, err := domain.ParseManicureType(raw)
	if err != nil {
		return "", err
	}
	if mt != domain.ManicureNone && !prof.Manicure {
		return "", httperr.ErrBusiness("manicure_not_offered")
	}
	return mt, nil
}
