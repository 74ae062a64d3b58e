package service

import (
	"context"

	"agriloop/entities"
)

type PartnerInput struct {
	Name             string               `json:"name"`
	Type             entities.PartnerType `json:"type"`
	CapacityKgPerDay float64              `json:"capacity_kg_per_day"`
	Latitude         float64              `json:"latitude"`
	Longitude        float64              `json:"longitude"`
}

type WasteInput struct {
	WasteType  entities.WasteType `json:"waste_type"`
	QuantityKg float64            `json:"quantity_kg"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	Address    string             `json:"address"`
}

// Match is a request together with the partner it was assigned to.
type Match struct {
	Request    entities.WasteRequest `json:"request"`
	Partner    entities.Partner      `json:"partner"`
	DistanceKm float64               `json:"distance_km"`
}

type CircularService interface {
	Partners(ctx context.Context) ([]entities.Partner, error)
	AddPartner(ctx context.Context, actor entities.Principal, in PartnerInput) (*entities.Partner, error)
	// SeedPartners loads the initial directory; it is only called at startup.
	SeedPartners(ctx context.Context, partners []entities.Partner) error

	CreateRequest(ctx context.Context, user string, in WasteInput) (*entities.WasteRequest, error)
	Requests(ctx context.Context, user string) ([]entities.WasteRequest, error)
	// MatchRequest assigns a partner to a pending request.
	MatchRequest(ctx context.Context, actor entities.Principal, id uint) (*Match, error)
	CompleteRequest(ctx context.Context, actor entities.Principal, id uint) (*entities.WasteRequest, error)
}
