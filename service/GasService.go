package service

import (
	"context"

	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type GasService interface {
	GetGases(ctx context.Context) ([]view.Gas, error)
}

func NewGasService(gasRepo repository.GasRepository) GasService {
	return &gasServiceImpl{gasRepo: gasRepo}
}

type gasServiceImpl struct {
	gasRepo repository.GasRepository
}

func (g *gasServiceImpl) GetGases(ctx context.Context) ([]view.Gas, error) {
	entities, err := g.gasRepo.GetGasesWithPrices(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]view.Gas, 0, len(entities))
	for i := range entities {
		result = append(result, *entity.MakeGasView(&entities[i]))
	}
	return result, nil
}
