package view

import "time"

type DivingCylinderSet struct {
	Id        string           `json:"id"`
	Owner     string           `json:"owner"`
	Name      string           `json:"name"`
	Archived  bool             `json:"archived"`
	Cylinders []DivingCylinder `json:"cylinders,omitempty"`
}

type DivingCylinder struct {
	Id           string    `json:"id"`
	Volume       float64   `json:"volume"`
	Pressure     int       `json:"pressure"`
	Material     string    `json:"material"`
	SerialNumber string    `json:"serialNumber"`
	Inspection   time.Time `json:"inspection"`
}

type CreateCylinderSetReq struct {
	Owner     string                    `json:"owner" validate:"required,uuid"`
	Name      string                    `json:"name" validate:"required,max=255"`
	Cylinders []CreateDivingCylinderReq `json:"cylinders" validate:"required,min=1,dive"`
}

type CreateDivingCylinderReq struct {
	Volume       float64 `json:"volume" validate:"required,gt=0"`
	Pressure     int     `json:"pressure" validate:"required,gt=0"`
	Material     string  `json:"material" validate:"required"`
	SerialNumber string  `json:"serialNumber" validate:"required"`
	Inspection   string  `json:"inspection" validate:"required"`
}
