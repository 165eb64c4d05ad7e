package entity

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type FillEventEntity struct {
	tableName struct{} `pg:"fill_event, alias:fill_event"`

	Id            int64     `pg:"id, pk"`
	UserId        string    `pg:"user_id, type:uuid"`
	CylinderSetId string    `pg:"cylinder_set_id, type:uuid"`
	GasMixture    string    `pg:"gas_mixture, type:varchar"`
	Description   string    `pg:"description, type:text"`
	PriceEurCents int       `pg:"price_eur_cents, use_zero"`
	CreatedAt     time.Time `pg:"created_at, type:timestamptz"`
}

type PaymentEventEntity struct {
	tableName struct{} `pg:"payment_event, alias:payment_event"`

	Id        int64     `pg:"id, pk"`
	UserId    string    `pg:"user_id, type:uuid"`
	Status    string    `pg:"status, type:varchar"`
	CreatedAt time.Time `pg:"created_at, type:timestamptz"`
	UpdatedAt time.Time `pg:"updated_at, type:timestamptz"`
}

type FillEventPaymentEventEntity struct {
	tableName struct{} `pg:"fill_event_payment_event, alias:fill_event_payment_event"`

	FillEventId    int64 `pg:"fill_event_id, pk"`
	PaymentEventId int64 `pg:"payment_event_id, pk"`
}

func MakeFillEventView(ent *FillEventEntity) *view.FillEvent {
	return &view.FillEvent{
		Id:            ent.Id,
		UserId:        ent.UserId,
		CylinderSetId: ent.CylinderSetId,
		GasMixture:    ent.GasMixture,
		Description:   ent.Description,
		PriceEurCents: ent.PriceEurCents,
		CreatedAt:     ent.CreatedAt,
	}
}
