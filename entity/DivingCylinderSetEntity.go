package entity

import (
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/view"
)

type DivingCylinderSetEntity struct {
	tableName struct{} `pg:"diving_cylinder_set, alias:diving_cylinder_set"`

	Id       string `pg:"id, pk, type:uuid"`
	Owner    string `pg:"owner, type:uuid"`
	Name     string `pg:"name, type:varchar"`
	Archived bool   `pg:"archived, use_zero"`
}

type DivingCylinderEntity struct {
	tableName struct{} `pg:"diving_cylinder, alias:diving_cylinder"`

	Id           string    `pg:"id, pk, type:uuid"`
	Volume       float64   `pg:"volume"`
	Pressure     int       `pg:"pressure"`
	Material     string    `pg:"material, type:varchar"`
	SerialNumber string    `pg:"serial_number, type:varchar"`
	Inspection   time.Time `pg:"inspection, type:timestamptz"`
}

type CylinderToSetEntity struct {
	tableName struct{} `pg:"diving_cylinder_to_set, alias:diving_cylinder_to_set"`

	CylinderId    string `pg:"cylinder_id, pk, type:uuid"`
	CylinderSetId string `pg:"cylinder_set_id, pk, type:uuid"`
}

func MakeCylinderSetView(set *DivingCylinderSetEntity, cylinders []DivingCylinderEntity) *view.DivingCylinderSet {
	result := view.DivingCylinderSet{
		Id:       set.Id,
		Owner:    set.Owner,
		Name:     set.Name,
		Archived: set.Archived,
	}
	for _, cylinder := range cylinders {
		result.Cylinders = append(result.Cylinders, view.DivingCylinder{
			Id:           cylinder.Id,
			Volume:       cylinder.Volume,
			Pressure:     cylinder.Pressure,
			Material:     cylinder.Material,
			SerialNumber: cylinder.SerialNumber,
			Inspection:   cylinder.Inspection,
		})
	}
	return &result
}
