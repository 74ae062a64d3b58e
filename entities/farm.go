package entities

import (
	"strings"
	"time"
)

type SoilType string

const (
	SoilClay    SoilType = "clay"
	SoilSandy   SoilType = "sandy"
	SoilLoamy   SoilType = "loamy"
	SoilSilty   SoilType = "silty"
	SoilPeaty   SoilType = "peaty"
	SoilChalky  SoilType = "chalky"
	SoilUnknown SoilType = "unknown"
)

func (s SoilType) Valid() bool {
	switch s {
	case SoilClay, SoilSandy, SoilLoamy, SoilSilty, SoilPeaty, SoilChalky, SoilUnknown:
		return true
	}
	return false
}

// ParseSoilType lowercases s; empty input means unknown.
func ParseSoilType(s string) SoilType {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SoilUnknown
	}
	return SoilType(s)
}

type Farm struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	AreaHectares float64   `json:"area_hectares"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Address      string    `json:"address"`
	SoilType     SoilType  `json:"soil_type"`
	Owner        string    `gorm:"index" json:"owner"`
	CreatedAt    time.Time `json:"created_at"`
}
