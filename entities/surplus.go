package entities

import "time"

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingSold      ListingStatus = "sold"
	ListingExpired   ListingStatus = "expired"
)

func (s ListingStatus) Valid() bool {
	return s == ListingAvailable || s == ListingSold || s == ListingExpired
}

type SurplusListing struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	User           string        `gorm:"index" json:"user"`
	CropID         uint          `gorm:"index" json:"crop_id"`
	Crop           string        `json:"crop"`
	Quantity       float64       `json:"quantity"`
	HarvestDate    time.Time     `json:"harvest_date"`
	UnitPrice      *float64      `json:"unit_price"`
	Status         ListingStatus `json:"status"`
	IdempotencyKey string        `gorm:"index" json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (l SurplusListing) Clone() SurplusListing {
	if l.UnitPrice != nil {
		p := *l.UnitPrice
		l.UnitPrice = &p
	}
	return l
}
