// Package worldgen builds deterministic world maps from a seed.
package worldgen

import (
	"errors"
	"fmt"
	"log"

	"beast-ride-saga/server/models"
)

// ErrInvalidDimensions is returned when the requested width or height is not positive
var ErrInvalidDimensions = errors.New("invalid world dimensions")

const (
	DefaultDiffusionPasses = 5
	DefaultNoiseAmplitude  = 2.5
)

// Params controls a generation run
type Params struct {
	Width  int
	Height int
	Seed   int64

	// DiffusionPasses defaults to DefaultDiffusionPasses when zero.
	DiffusionPasses int
	// NoiseAmplitude defaults to DefaultNoiseAmplitude when zero.
	NoiseAmplitude float64
	// RiverCount defaults to max(width, height)/8 when zero.
	RiverCount int

	Logger *log.Logger
}

func (p Params) withDefaults() Params {
	if p.DiffusionPasses <= 0 {
		p.DiffusionPasses = DefaultDiffusionPasses
	}
	if p.NoiseAmplitude == 0 {
		p.NoiseAmplitude = DefaultNoiseAmplitude
	}
	if p.RiverCount <= 0 {
		p.RiverCount = max(1, max(p.Width, p.Height)/8)
	}
	return p
}

func (p Params) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

// GenerateWorld generates a world with default tuning
func GenerateWorld(width, height int, seed int64) (*models.WorldMap, error) {
	return Generate(Params{Width: width, Height: height, Seed: seed})
}

// Generate runs the full pipeline: scalar fields, classification, rivers and
// lakes, regions, points of interest, roads and finally the player start.
// The same Params always yield an identical map.
func Generate(p Params) (*models.WorldMap, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, p.Width, p.Height)
	}
	p = p.withDefaults()
	rng := NewRNG(p.Seed)

	w := &models.WorldMap{
		Width:  p.Width,
		Height: p.Height,
		Seed:   p.Seed,
		Cells:  make([]models.Cell, p.Width*p.Height),
	}

	elevation := GenerateElevation(p.Width, p.Height, p.DiffusionPasses, p.NoiseAmplitude, rng)
	temperature, humidity := DeriveClimate(p.Width, p.Height, elevation, rng)
	applyFields(w, elevation, temperature, humidity)
	classifyCells(w, rng)
	p.logf("worldgen %dx%d seed=%d: fields and terrain classified", p.Width, p.Height, p.Seed)

	rivers := CarveRivers(w, p.RiverCount)
	lakes := CarveLakes(w, rng)
	p.logf("worldgen: carved %d rivers and %d lakes", len(rivers), len(lakes))

	w.Regions = IdentifyRegions(w, rng)
	pois := PlaceSettlements(w, w.Regions, rng)
	ConnectPointsOfInterest(w, pois, rng)
	w.PointsOfInterest = pois
	p.logf("worldgen: %d regions, %d points of interest", len(w.Regions), len(w.PointsOfInterest))

	start := chooseStart(w, rng)
	w.PlacePlayer(start.X, start.Y, models.StartRevealRadius)
	p.logf("worldgen: player starts at (%d,%d)", start.X, start.Y)

	return w, nil
}

// chooseStart prefers a village, then a town, then any plains cell, then the
// map centre.
func chooseStart(w *models.WorldMap, rng *RNG) models.Position {
	for _, kind := range []models.POIKind{models.POIKindVillage, models.POIKindTown} {
		var options []models.Position
		for _, poi := range w.PointsOfInterest {
			if poi.Kind == kind {
				options = append(options, models.Position{X: poi.X, Y: poi.Y})
			}
		}
		if len(options) > 0 {
			return options[rng.IntN(len(options))]
		}
	}

	var plains []models.Position
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			if w.TileAt(x, y).Terrain == models.TerrainPlains {
				plains = append(plains, models.Position{X: x, Y: y})
			}
		}
	}
	if len(plains) > 0 {
		return plains[rng.IntN(len(plains))]
	}
	return models.Position{X: w.Width / 2, Y: w.Height / 2}
}
