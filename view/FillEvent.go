package view

import "time"

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "CREATED"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type FillEvent struct {
	Id            int64     `json:"id"`
	UserId        string    `json:"userId"`
	CylinderSetId string    `json:"cylinderSetId"`
	GasMixture    string    `json:"gasMixture"`
	Description   string    `json:"description,omitempty"`
	PriceEurCents int       `json:"priceEurCents"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateFillEventReq carries an already-priced fill. Price calculation from
// gas amounts happens in the fill station UI, not in this service.
type CreateFillEventReq struct {
	UserId        string `json:"userId" validate:"required,uuid"`
	CylinderSetId string `json:"cylinderSetId" validate:"required,uuid"`
	GasMixture    string `json:"gasMixture" validate:"required,max=128"`
	Description   string `json:"description" validate:"max=1024"`
	PriceEurCents int    `json:"priceEurCents" validate:"gte=0"`
}
