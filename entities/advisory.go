package entities

import "time"

const AdvisoryIrrigation = "irrigation"

type Advisory struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	User           string    `gorm:"index" json:"user"`
	CropID         uint      `gorm:"index" json:"crop_id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Recommendation string    `json:"recommendation"`
	Volume         float64   `json:"volume"`
	Frequency      int       `json:"frequency"`
	Urgency        Urgency   `json:"urgency"`
	RiskFlags      []string  `gorm:"serializer:json" json:"risk_flags"`
	IdempotencyKey string    `gorm:"index" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// Clone returns a copy that shares no memory with a.
func (a Advisory) Clone() Advisory {
	a.RiskFlags = append([]string(nil), a.RiskFlags...)
	return a
}

// Urgency is shared by the irrigation and surplus recommendations.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
	UrgencyNone   Urgency = "none"
)
