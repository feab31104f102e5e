package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), nil
	}
	return "", httperr.ErrBusiness("invalid_gender")
}

type Role string

const (
	RoleResident     Role = "resident"
	RoleProfessional Role = "professional"
	RoleAdmin        Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleResident, RoleProfessional, RoleAdmin:
		return Role(s), nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

type Kind string

const (
	KindAppointment Kind = "appt"
	KindBlock       Kind = "block"
)

type ManicureType string

const (
	ManicureNone ManicureType = ""
	ManicureHand ManicureType = "hand"
	ManicureFoot ManicureType = "foot"
	ManicureBoth ManicureType = "both"
)

var manicureLabels = map[ManicureType]string{
	ManicureHand: "Mão",
	ManicureFoot: "Pé",
	ManicureBoth: "Mão + Pé (2 horários)",
}

func ParseManicureType(s string) (ManicureType, error) {
	mt := ManicureType(s)
	if mt == ManicureNone {
		return mt, nil
	}
	if _, ok := manicureLabels[mt]; !ok {
		return "", httperr.ErrBusiness("invalid_manicure_type")
	}
	return mt, nil
}

func (m ManicureType) Label() string {
	return manicureLabels[m]
}

// Session is the acting user of a request.
type Session struct {
	UserID string
	Name   string
	Unit   string
	Gender Gender
	Role   Role
}

type Professional struct {
	ID          string
	Name        string
	Gender      Gender
	Description string
	Maca        bool
	Manicure    bool
}

// Cell is the (professional, date, time) coordinate a record occupies.
type Cell struct {
	ProfID string
	Date   string
	Time   string
}

// Entry is either an *Appointment or a *Block.
type Entry interface {
	EntryID() string
	Kind() Kind
	Cell() Cell
	isEntry()
}

type Appointment struct {
	ID    string
	Date  string
	Time  string
	Time2 string

	ProfID   string
	ProfName string

	ClientID     string
	ClientName   string
	ClientUnit   string
	ClientGender Gender

	Description  string
	ManicureType ManicureType
	PairID       string

	CreatedAt time.Time
}

func (a *Appointment) EntryID() string { return a.ID }
func (a *Appointment) Kind() Kind      { return KindAppointment }
func (a *Appointment) Cell() Cell      { return Cell{ProfID: a.ProfID, Date: a.Date, Time: a.Time} }
func (a *Appointment) isEntry()        {}

// Paired reports whether the appointment is half of a two-slot reservation.
func (a *Appointment) Paired() bool { return a.PairID != "" }

// TimeLabel is "09:00" or "09:00+10:00" for the record carrying Time2.
func (a *Appointment) TimeLabel() string {
	if a.Time2 != "" {
		return a.Time + "+" + a.Time2
	}
	return a.Time
}

type Block struct {
	ID          string
	Date        string
	Time        string
	ProfID      string
	ProfName    string
	Description string
	CreatedAt   time.Time
}

func (b *Block) EntryID() string { return b.ID }
func (b *Block) Kind() Kind      { return KindBlock }
func (b *Block) Cell() Cell      { return Cell{ProfID: b.ProfID, Date: b.Date, Time: b.Time} }
func (b *Block) isEntry()        {}
