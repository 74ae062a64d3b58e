// Package forecast predicts crop yield and the surplus left after demand.
package forecast

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"agriloop/entities"
	"agriloop/pkg/apperr"
)

const DefaultBaseYield = 5000.0 // kg/ha for crops missing from the table

// Base yields in kg/ha, keyed by lowercase crop name.
var DefaultYieldTable = map[string]float64{
	"wheat":  3500,
	"rice":   4000,
	"corn":   8000,
	"maize":  8000,
	"potato": 25000,
	"tomato": 50000,
}

var soilMultiplier = map[entities.SoilType]float64{
	entities.SoilLoamy: 1.2,
	entities.SoilClay:  0.9,
	entities.SoilSandy: 0.8,
	entities.SoilSilty: 1.1,
}

// RandomSource yields floats in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// lockedSource makes a RandomSource safe for concurrent predictions.
type lockedSource struct {
	mu  sync.Mutex
	src RandomSource
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// NewSeededSource returns a deterministic source; seed 0 seeds from the clock.
func NewSeededSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type Predictor struct {
	table map[string]float64
	rnd   RandomSource
}

// NewPredictor copies table (nil means DefaultYieldTable) and draws the
// variance factor from rnd.
func NewPredictor(table map[string]float64, rnd RandomSource) *Predictor {
	if table == nil {
		table = DefaultYieldTable
	}
	t := make(map[string]float64, len(table))
	for k, v := range table {
		t[strings.ToLower(strings.TrimSpace(k))] = v
	}
	if rnd == nil {
		rnd = NewSeededSource(0)
	}
	return &Predictor{table: t, rnd: &lockedSource{src: rnd}}
}

// BaseYield returns the kg/ha figure used for cropName.
func (p *Predictor) BaseYield(cropName string) float64 {
	if v, ok := p.table[strings.ToLower(strings.TrimSpace(cropName))]; ok {
		return v
	}
	return DefaultBaseYield
}

// PredictYield estimates the harvest in kg. The result varies by up to ±10%
// between calls to mimic seasonal variance.
func (p *Predictor) PredictYield(cropName string, areaHectares float64, soil entities.SoilType) (float64, error) {
	if areaHectares <= 0 {
		return 0, apperr.Validation("area must be > 0, got %v", areaHectares)
	}
	mult, ok := soilMultiplier[soil]
	if !ok {
		mult = 1.0
	}
	factor := 0.9 + 0.2*p.rnd.Float64()
	return round2(p.BaseYield(cropName) * areaHectares * mult * factor), nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
