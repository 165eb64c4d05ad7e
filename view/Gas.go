package view

import "time"

// Gas with its currently active price. Prices are versioned rows in the
// store; only the open-ended row is reported here.
type Gas struct {
	Id            int       `json:"id"`
	Name          string    `json:"name"`
	PriceEurCents int       `json:"priceEurCents"`
	ActiveFrom    time.Time `json:"activeFrom"`
}
