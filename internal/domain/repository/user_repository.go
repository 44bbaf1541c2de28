package repository

import (
	"context"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	// Create persiste un usuario nuevo. Devuelve domain.ErrUserExists si el username ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername devuelve el usuario o nil si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByID devuelve el usuario o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// ItemRepository puerto de persistencia de items.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Item, error)
}

// FileRepository puerto de persistencia de archivos subidos.
type FileRepository interface {
	Create(ctx context.Context, file *entity.UserFile) error
}
