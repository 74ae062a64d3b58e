package service

import (
	"context"
	"io"

	"agriloop/entities"
)

// Summary is the landing view for one user.
type Summary struct {
	Farms          int                       `json:"farms"`
	ActiveCrops    int                       `json:"active_crops"`
	Listings       int                       `json:"surplus_listings"`
	Advisories     int                       `json:"advisories"`
	RecentAdvice   []entities.Advisory       `json:"recent_advisories"`
	RecentListings []entities.SurplusListing `json:"recent_listings"`
}

type Stats struct {
	Users      int                   `json:"users"`
	Farms      int                   `json:"farms"`
	Crops      int                   `json:"crops"`
	Advisories int                   `json:"advisories"`
	Roles      map[entities.Role]int `json:"roles"`
}

type DashboardService interface {
	UserSummary(ctx context.Context, user string) (*Summary, error)
	AdminStats(ctx context.Context, actor entities.Principal) (*Stats, error)
	// ExportWorkbook writes the Users, Farms and Partners sheets as XLSX.
	ExportWorkbook(ctx context.Context, actor entities.Principal, w io.Writer) error
}

// The read sides of the other services the dashboard aggregates.
type (
	Users interface {
		ListUsers(ctx context.Context, actor string) ([]entities.User, error)
	}
	Farms interface {
		FarmsByOwner(ctx context.Context, owner string) ([]entities.Farm, error)
		ActiveCropsByOwner(ctx context.Context, owner string) ([]entities.Crop, error)
		AllFarms(ctx context.Context, actor entities.Principal) ([]entities.Farm, error)
		CountCrops(ctx context.Context) (int, error)
	}
	Advisories interface {
		History(ctx context.Context, user string, limit int) ([]entities.Advisory, error)
		Count(ctx context.Context) (int, error)
	}
	Listings interface {
		Listings(ctx context.Context, user string) ([]entities.SurplusListing, error)
	}
	Partners interface {
		Partners(ctx context.Context) ([]entities.Partner, error)
	}
)
