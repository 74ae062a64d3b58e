package entities

import "time"

type WasteType string

const (
	WasteCropResidue    WasteType = "crop_residue"
	WasteFood           WasteType = "food_waste"
	WasteOrganic        WasteType = "organic_waste"
	WasteSurplusProduce WasteType = "surplus_produce"
	WasteSpoiledProduce WasteType = "spoiled_produce"
)

func (w WasteType) Valid() bool {
	switch w {
	case WasteCropResidue, WasteFood, WasteOrganic, WasteSurplusProduce, WasteSpoiledProduce:
		return true
	}
	return false
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestMatched   RequestStatus = "matched"
	RequestCompleted RequestStatus = "completed"
)

type WasteRequest struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	User       string        `gorm:"index" json:"user"`
	WasteType  WasteType     `json:"waste_type"`
	QuantityKg float64       `json:"quantity_kg"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	Address    string        `json:"address,omitempty"`
	Status     RequestStatus `gorm:"index" json:"status"` // pending|matched|completed
	PartnerID  *uint         `json:"partner_id"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (r WasteRequest) Clone() WasteRequest {
	if r.PartnerID != nil {
		id := *r.PartnerID
		r.PartnerID = &id
	}
	return r
}

type PartnerType string

const (
	PartnerCompost   PartnerType = "compost_facility"
	PartnerBiogas    PartnerType = "biogas_plant"
	PartnerFoodBank  PartnerType = "food_bank"
	PartnerRecycling PartnerType = "recycling_center"
)

func (p PartnerType) Valid() bool {
	switch p {
	case PartnerCompost, PartnerBiogas, PartnerFoodBank, PartnerRecycling:
		return true
	}
	return false
}

type Partner struct {
	ID               uint        `gorm:"primaryKey" json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	Type             PartnerType `json:"type" yaml:"type"`
	CapacityKgPerDay float64     `json:"capacity_kg_per_day" yaml:"capacity_kg_per_day"`
	Latitude         float64     `json:"latitude" yaml:"latitude"`
	Longitude        float64     `json:"longitude" yaml:"longitude"`
	Rating           float64     `json:"rating" yaml:"rating"`
}
