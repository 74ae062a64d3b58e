package serviceImp

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"agriloop/entities"
)

// DefaultPartners is the directory used when no partners file is configured.
func DefaultPartners() []entities.Partner {
	return []entities.Partner{
		{ID: 1, Name: "GreenCompost Co", Type: entities.PartnerCompost, CapacityKgPerDay: 5000, Latitude: 28.6139, Longitude: 77.2090, Rating: 4.5},
		{ID: 2, Name: "BioGas Solutions", Type: entities.PartnerBiogas, CapacityKgPerDay: 10000, Latitude: 28.7041, Longitude: 77.1025, Rating: 4.2},
		{ID: 3, Name: "FoodBank Network", Type: entities.PartnerFoodBank, CapacityKgPerDay: 2000, Latitude: 28.5355, Longitude: 77.3910, Rating: 4.8},
	}
}

type partnersFile struct {
	Partners []entities.Partner `yaml:"partners"`
}

// LoadPartners reads a YAML directory file. Either every partner carries an
// id or none does; with ids the directory is ordered by id.
func LoadPartners(path string) ([]entities.Partner, error) {
	if path == "" {
		return DefaultPartners(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read partners file: %w", err)
	}
	var f partnersFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse partners file %s: %w", path, err)
	}

	withID := 0
	for _, p := range f.Partners {
		if p.ID != 0 {
			withID++
		}
	}
	if withID != 0 && withID != len(f.Partners) {
		return nil, fmt.Errorf("partners file %s: set id on every partner or on none", path)
	}
	sort.SliceStable(f.Partners, func(i, j int) bool { return f.Partners[i].ID < f.Partners[j].ID })
	return f.Partners, nil
}
