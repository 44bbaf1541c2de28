package usecase

import (
	"context"

	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

// GoodsUseCase listados paginados de eventos de mercancías del usuario.
type GoodsUseCase struct {
	repo repository.GoodsRepository
}

// NewGoodsUseCase construye el caso de uso de mercancías.
func NewGoodsUseCase(repo repository.GoodsRepository) *GoodsUseCase {
	return &GoodsUseCase{repo: repo}
}

// ListProduced devuelve una página de eventos de producción del usuario.
func (uc *GoodsUseCase) ListProduced(ctx context.Context, userID string, offset, count int) (*dto.ListProducedResponse, error) {
	rows, err := uc.repo.ListProduced(ctx, userID, offset, count)
	if err != nil {
		return nil, err
	}
	return &dto.ListProducedResponse{Items: dto.FromProduced(rows)}, nil
}

// ListSold devuelve una página de eventos de venta del usuario.
func (uc *GoodsUseCase) ListSold(ctx context.Context, userID string, offset, count int) (*dto.ListSoldResponse, error) {
	rows, err := uc.repo.ListSold(ctx, userID, offset, count)
	if err != nil {
		return nil, err
	}
	return &dto.ListSoldResponse{Items: dto.FromSold(rows)}, nil
}

// ListTransported devuelve una página de eventos de movimiento del usuario.
func (uc *GoodsUseCase) ListTransported(ctx context.Context, userID string, offset, count int) (*dto.ListTransportedResponse, error) {
	rows, err := uc.repo.ListTransported(ctx, userID, offset, count)
	if err != nil {
		return nil, err
	}
	return &dto.ListTransportedResponse{Items: dto.FromTransported(rows)}, nil
}
