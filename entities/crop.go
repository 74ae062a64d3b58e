package entities

import "time"

type CropStatus string

const (
	CropActive    CropStatus = "active"
	CropHarvested CropStatus = "harvested"
	CropRemoved   CropStatus = "removed"
)

func (s CropStatus) Valid() bool {
	return s == CropActive || s == CropHarvested || s == CropRemoved
}

type Crop struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	FarmID              uint       `gorm:"index" json:"farm_id"`
	CropName            string     `json:"crop_name"`
	AreaHectares        float64    `json:"area_hectares"`
	PlantingDate        time.Time  `json:"planting_date"`
	ExpectedHarvestDate time.Time  `json:"expected_harvest_date"`
	Status              CropStatus `gorm:"index" json:"status"` // active|harvested|removed
	Owner               string     `gorm:"index" json:"owner"`
	CreatedAt           time.Time  `json:"created_at"`
}
