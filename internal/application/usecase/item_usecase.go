package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

// ItemUseCase CRUD mínimo de items del usuario.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso de items.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un item asociado al usuario autenticado.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item := &entity.Item{
		ID:     uuid.New().String(),
		Name:   in.Name,
		UserID: userID,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ID: item.ID, Name: item.Name}, nil
}

// List devuelve los items del usuario.
func (uc *ItemUseCase) List(ctx context.Context, userID string) ([]dto.ItemResponse, error) {
	items, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemResponse{ID: it.ID, Name: it.Name})
	}
	return out, nil
}
