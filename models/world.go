package models

// WorldMap represents a generated world together with its exploration state
type WorldMap struct {
	Width                 int               `json:"width"`
	Height                int               `json:"height"`
	Seed                  int64             `json:"seed"`
	Cells                 []Cell            `json:"cells"` // row-major, index y*Width+x
	Regions               []Region          `json:"regions"`
	PointsOfInterest      []PointOfInterest `json:"points_of_interest"`
	CurrentPlayerPosition Position          `json:"current_player_position"`
}

// Terrain is the classified surface type of a cell
type Terrain string

const (
	TerrainOcean      Terrain = "ocean"
	TerrainShore      Terrain = "shore"
	TerrainPlains     Terrain = "plains"
	TerrainForest     Terrain = "forest"
	TerrainHills      Terrain = "hills"
	TerrainMountains  Terrain = "mountains"
	TerrainPeak       Terrain = "peak"
	TerrainIce        Terrain = "ice"
	TerrainSwamp      Terrain = "swamp"
	TerrainDesert     Terrain = "desert"
	TerrainTundra     Terrain = "tundra"
	TerrainRiver      Terrain = "river"
	TerrainLake       Terrain = "lake"
	TerrainPath       Terrain = "path"
	TerrainRoad       Terrain = "road"
	TerrainBridge     Terrain = "bridge"
	TerrainSettlement Terrain = "settlement"
	TerrainDungeon    Terrain = "dungeon"
	TerrainLandmark   Terrain = "landmark"
)

// AllTerrains lists every terrain in declaration order
var AllTerrains = []Terrain{
	TerrainOcean, TerrainShore, TerrainPlains, TerrainForest, TerrainHills,
	TerrainMountains, TerrainPeak, TerrainIce, TerrainSwamp, TerrainDesert,
	TerrainTundra, TerrainRiver, TerrainLake, TerrainPath, TerrainRoad,
	TerrainBridge, TerrainSettlement, TerrainDungeon, TerrainLandmark,
}

// IsWater reports whether the terrain is open or still water
func (t Terrain) IsWater() bool {
	return t == TerrainOcean || t == TerrainLake
}

// IsFreshwater reports whether the terrain holds drinkable water
func (t Terrain) IsFreshwater() bool {
	return t == TerrainRiver || t == TerrainLake
}

// Biome is the climatic zone a cell belongs to
type Biome string

const (
	BiomeTemperate Biome = "temperate"
	BiomeTropical  Biome = "tropical"
	BiomeArctic    Biome = "arctic"
	BiomeArid      Biome = "arid"
	BiomeCoastal   Biome = "coastal"
	BiomeVolcanic  Biome = "volcanic"
)

// ImpassableCost is the movement cost at or above which a cell cannot be entered
const ImpassableCost = 100

// Cell represents a single tile of the world grid
type Cell struct {
	Elevation          float64 `json:"elevation"`
	Humidity           float64 `json:"humidity"`
	Temperature        float64 `json:"temperature"`
	Terrain            Terrain `json:"terrain"`
	Biome              Biome   `json:"biome"`
	MovementCost       float64 `json:"movement_cost"`
	DangerLevel        int     `json:"danger_level"`
	Explored           bool    `json:"explored"`
	HasPointOfInterest bool    `json:"has_point_of_interest"`
	PointOfInterestID  string  `json:"point_of_interest_id,omitempty"`
}

// Walkable reports whether a traveller may enter the cell
func (c *Cell) Walkable() bool {
	return c.MovementCost < ImpassableCost
}

// InBounds reports whether (x, y) lies inside the map
func (w *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// Index converts (x, y) into a row-major cell index
func (w *WorldMap) Index(x, y int) int {
	return y*w.Width + x
}

// TileAt returns the cell at (x, y), or nil when out of bounds
func (w *WorldMap) TileAt(x, y int) *Cell {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.Cells[w.Index(x, y)]
}

// PointOfInterestAt returns the point of interest anchored at (x, y), if any
func (w *WorldMap) PointOfInterestAt(x, y int) *PointOfInterest {
	cell := w.TileAt(x, y)
	if cell == nil || !cell.HasPointOfInterest {
		return nil
	}
	return w.PointOfInterestByID(cell.PointOfInterestID)
}

// PointOfInterestByID looks up a point of interest by its identifier
func (w *WorldMap) PointOfInterestByID(id string) *PointOfInterest {
	for i := range w.PointsOfInterest {
		if w.PointsOfInterest[i].ID == id {
			return &w.PointsOfInterest[i]
		}
	}
	return nil
}

// RegionByID looks up a region by its identifier
func (w *WorldMap) RegionByID(id string) *Region {
	for i := range w.Regions {
		if w.Regions[i].ID == id {
			return &w.Regions[i]
		}
	}
	return nil
}

// CurrentRegion returns the first region containing the player, if any
func (w *WorldMap) CurrentRegion() *Region {
	p := w.CurrentPlayerPosition
	for i := range w.Regions {
		if w.Regions[i].Contains(p.X, p.Y) {
			return &w.Regions[i]
		}
	}
	return nil
}

// CurrentPointOfInterest returns the point of interest under the player, if any
func (w *WorldMap) CurrentPointOfInterest() *PointOfInterest {
	return w.PointOfInterestAt(w.CurrentPlayerPosition.X, w.CurrentPlayerPosition.Y)
}

// DiscoveredRegions returns copies of all discovered regions
func (w *WorldMap) DiscoveredRegions() []Region {
	var out []Region
	for _, r := range w.Regions {
		if r.Discovered {
			out = append(out, r)
		}
	}
	return out
}

// DiscoveredPointsOfInterest returns copies of all discovered points of interest
func (w *WorldMap) DiscoveredPointsOfInterest() []PointOfInterest {
	var out []PointOfInterest
	for _, p := range w.PointsOfInterest {
		if p.Discovered {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy of the map
func (w *WorldMap) Clone() *WorldMap {
	c := *w
	c.Cells = append([]Cell(nil), w.Cells...)
	c.Regions = append([]Region(nil), w.Regions...)
	c.PointsOfInterest = make([]PointOfInterest, len(w.PointsOfInterest))
	for i, p := range w.PointsOfInterest {
		p.Services = append([]Service(nil), p.Services...)
		p.ConnectedTo = append([]string(nil), p.ConnectedTo...)
		c.PointsOfInterest[i] = p
	}
	if w.PointsOfInterest == nil {
		c.PointsOfInterest = nil
	}
	return &c
}
