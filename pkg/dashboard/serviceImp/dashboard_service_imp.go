package serviceImp

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agriloop/entities"
	"agriloop/pkg/apperr"
	"agriloop/pkg/dashboard/service"
)

const recentItems = 3

type Deps struct {
	Users      service.Users
	Farms      service.Farms
	Advisories service.Advisories
	Listings   service.Listings
	Partners   service.Partners
}

type dashboardSvc struct{ d Deps }

func NewDashboardService(d Deps) service.DashboardService { return &dashboardSvc{d: d} }

func (s *dashboardSvc) UserSummary(ctx context.Context, user string) (*service.Summary, error) {
	farms, err := s.d.Farms.FarmsByOwner(ctx, user)
	if err != nil {
		return nil, err
	}
	crops, err := s.d.Farms.ActiveCropsByOwner(ctx, user)
	if err != nil {
		return nil, err
	}
	advice, err := s.d.Advisories.History(ctx, user, 0)
	if err != nil {
		return nil, err
	}
	listings, err := s.d.Listings.Listings(ctx, user)
	if err != nil {
		return nil, err
	}
	return &service.Summary{
		Farms:          len(farms),
		ActiveCrops:    len(crops),
		Listings:       len(listings),
		Advisories:     len(advice),
		RecentAdvice:   advice[:min(recentItems, len(advice))],
		RecentListings: listings[:min(recentItems, len(listings))],
	}, nil
}

func (s *dashboardSvc) AdminStats(ctx context.Context, actor entities.Principal) (*service.Stats, error) {
	if !actor.Can(entities.CapViewAll) {
		return nil, apperr.PermissionDenied("%s access required", entities.RoleAdmin)
	}
	users, err := s.d.Users.ListUsers(ctx, actor.Username)
	if err != nil {
		return nil, err
	}
	farms, err := s.d.Farms.AllFarms(ctx, actor)
	if err != nil {
		return nil, err
	}
	crops, err := s.d.Farms.CountCrops(ctx)
	if err != nil {
		return nil, err
	}
	advisories, err := s.d.Advisories.Count(ctx)
	if err != nil {
		return nil, err
	}

	roles := make(map[entities.Role]int, len(entities.Roles))
	for _, r := range entities.Roles {
		roles[r] = 0
	}
	for _, u := range users {
		roles[u.Role]++
	}
	return &service.Stats{Users: len(users), Farms: len(farms), Crops: crops, Advisories: advisories, Roles: roles}, nil
}

func (s *dashboardSvc) ExportWorkbook(ctx context.Context, actor entities.Principal, w io.Writer) error {
	if !actor.Can(entities.CapViewAll) {
		return apperr.PermissionDenied("%s access required", entities.RoleAdmin)
	}
	users, err := s.d.Users.ListUsers(ctx, actor.Username)
	if err != nil {
		return err
	}
	farms, err := s.d.Farms.AllFarms(ctx, actor)
	if err != nil {
		return err
	}
	partners, err := s.d.Partners.Partners(ctx)
	if err != nil {
		return err
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{"Users", []any{"Username", "Email", "Name", "Role"}, nil},
		{"Farms", []any{"ID", "Name", "Area", "Owner"}, nil},
		{"Partners", []any{"ID", "Name", "Type", "Capacity", "Rating"}, nil},
	}
	for _, u := range users {
		sheets[0].rows = append(sheets[0].rows, []any{u.Username, u.Email, u.FullName, string(u.Role)})
	}
	for _, f := range farms {
		sheets[1].rows = append(sheets[1].rows, []any{f.ID, f.Name, f.AreaHectares, f.Owner})
	}
	for _, p := range partners {
		sheets[2].rows = append(sheets[2].rows, []any{p.ID, p.Name, string(p.Type), p.CapacityKgPerDay, p.Rating})
	}

	x := excelize.NewFile()
	defer x.Close()
	headerStyle, err := x.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, sh := range sheets {
		if i == 0 {
			if err := x.SetSheetName(x.GetSheetName(0), sh.name); err != nil {
				return err
			}
		} else if _, err := x.NewSheet(sh.name); err != nil {
			return err
		}
		if err := x.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return err
		}
		last, _ := excelize.CoordinatesToCellName(len(sh.header), 1)
		if err := x.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
			return err
		}
		for r, row := range sh.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := x.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("%s row %d: %w", sh.name, r+2, err)
			}
		}
	}
	x.SetActiveSheet(0)
	_, err = x.WriteTo(w)
	return err
}
