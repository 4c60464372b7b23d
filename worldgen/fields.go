package worldgen

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"beast-ride-saga/server/models"
)

const (
	seaLevel         = 30.0
	waterSearchRange = 10
	smoothRadius     = 2
	noiseFrequency   = 0.35
)

// field is a scalar value per cell, laid out like models.WorldMap.Cells.
type field struct {
	width, height int
	values        []float64
}

func newField(width, height int) *field {
	return &field{width: width, height: height, values: make([]float64, width*height)}
}

func (f *field) at(x, y int) float64 {
	return f.values[wrap(y, f.height)*f.width+wrap(x, f.width)]
}

func (f *field) set(x, y int, v float64) {
	f.values[wrap(y, f.height)*f.width+wrap(x, f.width)] = v
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// elevationSeeds records the fixed cells that diffusion must not touch.
type elevationSeeds struct {
	elevation *field
	fixed     []bool
}

func (s *elevationSeeds) put(x, y int, v float64) {
	s.elevation.set(x, y, clamp(v))
	s.fixed[wrap(y, s.elevation.height)*s.elevation.width+wrap(x, s.elevation.width)] = true
}

// GenerateElevation builds the elevation field: mountain ridges, ocean basins
// and sparse random peaks are seeded, then spread by wrapping diffusion passes.
func GenerateElevation(width, height int, passes int, noiseAmplitude float64, rng *RNG) []float64 {
	seeds := &elevationSeeds{
		elevation: newField(width, height),
		fixed:     make([]bool, width*height),
	}

	seedMountainRanges(seeds, width, height, rng)
	seedOceanBasins(seeds, width, height, rng)
	seedRandomPoints(seeds, width, height, rng)

	noise := opensimplex.New(rng.Int64())
	diffuse(seeds, passes, noiseAmplitude, noise)
	return seeds.elevation.values
}

func seedMountainRanges(s *elevationSeeds, width, height int, rng *RNG) {
	for i := 0; i < width/25; i++ {
		startX := rng.Range(0, float64(width))
		startY := rng.Range(0, float64(height))
		angle := rng.Range(0, 2*math.Pi)
		length := rng.IntN(width/3) + width/6
		half := float64(length) / 2
		dx, dy := math.Cos(angle), math.Sin(angle)

		for j := 0; j < length; j++ {
			falloff := 0.0
			if half > 0 {
				falloff = math.Abs(float64(j)-half) / half
			}
			x := int(math.Floor(startX + dx*float64(j)))
			y := int(math.Floor(startY + dy*float64(j)))
			s.put(x, y, 80+rng.Range(0, 20)-30*falloff)
		}
	}
}

func seedOceanBasins(s *elevationSeeds, width, height int, rng *RNG) {
	for i := 0; i < width/40; i++ {
		cx := rng.IntN(width)
		cy := rng.IntN(height)
		radius := rng.IntN(width/8) + width/8
		if radius <= 0 {
			continue
		}
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				d := math.Hypot(float64(dx), float64(dy))
				if d > float64(radius) {
					continue
				}
				s.put(cx+dx, cy+dy, 20-20*(1-d/float64(radius)))
			}
		}
	}
}

func seedRandomPoints(s *elevationSeeds, width, height int, rng *RNG) {
	n := width * height / 1000
	for i := 0; i < n; i++ {
		s.put(rng.IntN(width), rng.IntN(height), rng.Range(0, 100))
	}
}

func diffuse(s *elevationSeeds, passes int, amplitude float64, noise opensimplex.Noise) {
	cur := s.elevation
	for pass := 0; pass < passes; pass++ {
		next := newField(cur.width, cur.height)
		copy(next.values, cur.values)

		for y := 0; y < cur.height; y++ {
			for x := 0; x < cur.width; x++ {
				if s.fixed[y*cur.width+x] {
					continue
				}
				sum := 0.0
				for oy := -1; oy <= 1; oy++ {
					for ox := -1; ox <= 1; ox++ {
						sum += cur.at(x+ox, y+oy)
					}
				}
				jitter := noise.Eval3(float64(x)*noiseFrequency, float64(y)*noiseFrequency, float64(pass)) * amplitude
				next.values[y*cur.width+x] = clamp(sum/9 + jitter)
			}
		}
		cur = next
	}
	s.elevation = cur
}

// DeriveClimate computes temperature and humidity from latitude, elevation,
// prevailing wind and proximity to water, then smooths both fields.
func DeriveClimate(width, height int, elevation []float64, rng *RNG) (temperature, humidity []float64) {
	temp, humid := climateFields(width, height, elevation, rng)
	return smooth(temp, smoothRadius).values, smooth(humid, smoothRadius).values
}

// climateFields returns the unsmoothed temperature and humidity fields.
func climateFields(width, height int, elevation []float64, rng *RNG) (temp, humid *field) {
	temp = newField(width, height)
	humid = newField(width, height)
	nearest := waterDistances(width, height, elevation)

	for y := 0; y < height; y++ {
		latitude := 1 - math.Abs(float64(y)/float64(height)-0.5)*2
		for x := 0; x < width; x++ {
			i := y*width + x
			alt := elevation[i]

			temp.values[i] = clamp(latitude*100 - alt/100*40)

			h := latitude*60 + rng.Range(0, 40)
			if x > 0 && elevation[i-1] < alt && alt > 60 {
				h += 20
			} else if x < width-1 && elevation[i+1] < alt && alt > 60 {
				h -= 20
			}
			if d := nearest[i]; d >= 0 {
				h += 20 * (1 - d/waterSearchRange)
			}
			humid.values[i] = clamp(h)
		}
	}
	return temp, humid
}

// waterDistances returns, per cell, the distance to the nearest water cell
// within the search range, or -1 when none is in range. The search wraps
// at the map edges like the other field passes.
func waterDistances(width, height int, elevation []float64) []float64 {
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			best := -1.0
			for dy := -waterSearchRange; dy <= waterSearchRange; dy++ {
				ny := wrap(y+dy, height)
				for dx := -waterSearchRange; dx <= waterSearchRange; dx++ {
					nx := wrap(x+dx, width)
					if elevation[ny*width+nx] >= seaLevel {
						continue
					}
					d := math.Hypot(float64(dx), float64(dy))
					if d <= waterSearchRange && (best < 0 || d < best) {
						best = d
					}
				}
			}
			out[y*width+x] = best
		}
	}
	return out
}

// smooth blends each value 70/30 with the wrapping mean of its neighbourhood.
func smooth(f *field, radius int) *field {
	out := newField(f.width, f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			sum, n := 0.0, 0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					sum += f.at(x+dx, y+dy)
					n++
				}
			}
			out.values[y*f.width+x] = clamp(f.values[y*f.width+x]*0.7 + sum/float64(n)*0.3)
		}
	}
	return out
}

// applyFields copies the scalar fields into the map cells.
func applyFields(w *models.WorldMap, elevation, temperature, humidity []float64) {
	for i := range w.Cells {
		w.Cells[i].Elevation = elevation[i]
		w.Cells[i].Temperature = temperature[i]
		w.Cells[i].Humidity = humidity[i]
	}
}
