package dto

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Unit        string `json:"unit"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
	Maca        bool   `json:"maca"`
	Manicure    bool   `json:"manicure"`
}

func FromUser(u *models.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Unit:        u.Unit,
		Gender:      u.Gender,
		Role:        u.Role,
		Description: u.Description,
		Maca:        u.Maca,
		Manicure:    u.Manicure,
	}
}

type ProfessionalDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Maca        bool   `json:"maca"`
	Manicure    bool   `json:"manicure"`
}

func FromProfessional(p booking.Professional) ProfessionalDTO {
	return ProfessionalDTO{
		ID:          p.ID,
		Name:        p.Name,
		Gender:      string(p.Gender),
		Description: p.Description,
		Maca:        p.Maca,
		Manicure:    p.Manicure,
	}
}
