package models

// Region represents a named rectangular area of the world
type Region struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CenterX         int     `json:"center_x"`
	CenterY         int     `json:"center_y"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Biome           Biome   `json:"biome"`
	MainTerrainType Terrain `json:"main_terrain_type"`
	Discovered      bool    `json:"discovered"`
	ExploredPercent float64 `json:"explored_percent"`
}

// DiscoveryThreshold is the explored percentage at which a region counts as discovered
const DiscoveryThreshold = 5

// Bounds returns the inclusive rectangle covered by the region
func (r *Region) Bounds() (minX, minY, maxX, maxY int) {
	return r.CenterX - r.Width/2, r.CenterY - r.Height/2,
		r.CenterX + r.Width/2, r.CenterY + r.Height/2
}

// Contains reports whether (x, y) lies inside the region rectangle
func (r *Region) Contains(x, y int) bool {
	minX, minY, maxX, maxY := r.Bounds()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

// POIKind classifies a point of interest
type POIKind string

const (
	POIKindTown     POIKind = "town"
	POIKindVillage  POIKind = "village"
	POIKindDungeon  POIKind = "dungeon"
	POIKindLandmark POIKind = "landmark"
)

// IsSettlement reports whether the kind is an inhabited place
func (k POIKind) IsSettlement() bool {
	return k == POIKindTown || k == POIKindVillage
}

// Service is something a settlement offers to travellers
type Service string

const (
	ServiceInn        Service = "inn"
	ServiceShop       Service = "shop"
	ServiceBlacksmith Service = "blacksmith"
	ServiceTemple     Service = "temple"
	ServiceGuild      Service = "guild"
)

// PointOfInterest represents a settlement, dungeon or landmark anchored to one cell
type PointOfInterest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Kind        POIKind   `json:"kind"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Discovered  bool      `json:"discovered"`
	Explored    bool      `json:"explored"`
	Services    []Service `json:"services,omitempty"`
	ConnectedTo []string  `json:"connected_to,omitempty"`
}

// IsConnectedTo reports whether a route to the given point of interest exists
func (p *PointOfInterest) IsConnectedTo(id string) bool {
	for _, c := range p.ConnectedTo {
		if c == id {
			return true
		}
	}
	return false
}
