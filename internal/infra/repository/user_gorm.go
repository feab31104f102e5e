package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return translateWrite(
		r.db.WithContext(ctx).Create(u).Error,
		"email_already_exists",
	)
}

func (r *UserGormRepository) Save(ctx context.Context, u *models.User) error {
	return translateWrite(
		r.db.WithContext(ctx).Save(u).Error,
		"email_already_exists",
	)
}

func (r *UserGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translateRead(gorm.ErrRecordNotFound, "user_not_found")
	}
	return nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translateRead(err, "user_not_found")
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, translateRead(err, "user_not_found")
	}
	return &u, nil
}

// List returns non-admin users whose name or unit contains query.
func (r *UserGormRepository) List(ctx context.Context, query string) ([]models.User, error) {
	q := r.db.WithContext(ctx).Where("role <> ?", string(booking.RoleAdmin))

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(unit) LIKE ?", like, like)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
