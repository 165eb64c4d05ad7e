package entity

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type GasEntity struct {
	tableName struct{} `pg:"gas, alias:gas"`

	Id   int    `pg:"id, pk"`
	Name string `pg:"name, type:varchar"`
}

type GasPriceEntity struct {
	tableName struct{} `pg:"gas_price, alias:gas_price"`

	Id            int       `pg:"id, pk"`
	GasId         int       `pg:"gas_id"`
	PriceEurCents int       `pg:"price_eur_cents, use_zero"`
	ActiveFrom    time.Time `pg:"active_from, type:timestamptz"`
	ActiveTo      time.Time `pg:"active_to, type:timestamptz"`
}

// GasWithPriceEntity is the join projection for the gas listing.
type GasWithPriceEntity struct {
	Id            int       `pg:"id"`
	Name          string    `pg:"name"`
	PriceEurCents int       `pg:"price_eur_cents"`
	ActiveFrom    time.Time `pg:"active_from"`
}

func MakeGasView(ent *GasWithPriceEntity) *view.Gas {
	return &view.Gas{
		Id:            ent.Id,
		Name:          ent.Name,
		PriceEurCents: ent.PriceEurCents,
		ActiveFrom:    ent.ActiveFrom,
	}
}
