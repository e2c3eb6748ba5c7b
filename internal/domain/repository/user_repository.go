package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Facturacion-GST/internal/domain/entity"
)

// UserRepository persistencia de usuarios. El email es único en todo el sistema.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	TouchLogin(ctx context.Context, userID string, at time.Time) error
}
