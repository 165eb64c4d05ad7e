package repository

import (
	"context"

	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/entity"
	"github.com/pkg/errors"
)

type GasRepository interface {
	GetGasesWithPrices(ctx context.Context) ([]entity.GasWithPriceEntity, error)
}

func NewGasRepository(cp db.ConnectionProvider) GasRepository {
	return &gasRepositoryImpl{cp: cp}
}

type gasRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (g gasRepositoryImpl) GetGasesWithPrices(ctx context.Context) ([]entity.GasWithPriceEntity, error) {
	query := `
		select distinct on (g.id) g.id, g.name, gp.price_eur_cents, gp.active_from
		from gas g
		join gas_price gp on gp.gas_id = g.id
		where now() between gp.active_from and gp.active_to
		order by g.id, gp.active_from desc`

	var result []entity.GasWithPriceEntity
	_, err := g.cp.GetConnection().QueryContext(ctx, &result, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query gas prices")
	}
	return result, nil
}
