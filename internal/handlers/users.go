package handlers

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// UserCache is told when user data that feeds the professionals list changes.
type UserCache interface {
	InvalidateUsers(ctx context.Context)
}

// --------- Requests ---------

type UserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Unit        string `json:"unit"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Maca        bool   `json:"maca"`
	Manicure    bool   `json:"manicure"`
}

type userRules struct {
	passwordRequired bool
	checkDomain      bool
}

// applyCommon validates and copies name, email and password.
func (r *UserRequest) applyCommon(u *models.User, rules userRules) error {
	name := strings.TrimSpace(r.Name)
	email := validators.NormalizeEmail(r.Email)

	if name == "" || email == "" || (rules.passwordRequired && r.Password == "") {
		return httperr.ErrBusiness("missing_fields")
	}
	if !validators.IsEmailSyntaxValid(email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if rules.checkDomain && !validators.IsEmailDomainValid(email) {
		return httperr.ErrBusiness("invalid_email_domain")
	}

	u.Name = name
	u.Email = email

	if r.Password != "" {
		hash, err := validators.HashPassword(r.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	return nil
}

func parseGender(raw string, required bool) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" && !required {
		return "", nil
	}
	g, err := booking.ParseGender(raw)
	if err != nil {
		return "", err
	}
	return string(g), nil
}

func newUserID() string {
	return uuid.NewString()
}
