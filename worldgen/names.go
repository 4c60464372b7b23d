package worldgen

import (
	"fmt"

	"beast-ride-saga/server/models"
)

var regionPrefixes = map[models.Terrain][]string{
	models.TerrainPlains:    {"Plains of", "Meadows of", "Reaches of"},
	models.TerrainForest:    {"Forest of", "Woods of", "Grove of"},
	models.TerrainHills:     {"Hills of", "Slopes of", "Downs of"},
	models.TerrainMountains: {"Mounts of", "Peaks of", "Massif of"},
	models.TerrainSwamp:     {"Marsh of", "Fens of", "Bogs of"},
	models.TerrainDesert:    {"Desert of", "Dunes of", "Sands of"},
	models.TerrainTundra:    {"Tundra of", "Frozen Reaches of", "Icefields of"},
	models.TerrainShore:     {"Coast of", "Strand of", "Shores of"},
	models.TerrainRiver:     {"Vale of", "Riverlands of", "Fords of"},
	models.TerrainLake:      {"Lake of", "Mere of", "Pools of"},
}

var biomeSuffixes = map[models.Biome][]string{
	models.BiomeTemperate: {"Greenery", "Harmony", "Balance", "Serenity"},
	models.BiomeTropical:  {"Warmth", "Plenty", "Bloom", "Vigour"},
	models.BiomeArctic:    {"Rime", "Ice", "Winter", "Snow"},
	models.BiomeArid:      {"Drought", "Desolation", "Thirst", "Dust"},
	models.BiomeCoastal:   {"Foam", "Tides", "Horizon", "Spray"},
	models.BiomeVolcanic:  {"Ashes", "Lava", "Embers", "Cinder"},
}

var regionDescriptions = map[models.Terrain]string{
	models.TerrainPlains:    "Open grassland rolling towards the horizon.",
	models.TerrainForest:    "Dense woodland where the canopy swallows the light.",
	models.TerrainHills:     "Rolling hills broken by rocky outcrops.",
	models.TerrainMountains: "Towering ridges where only the hardiest beasts roam.",
	models.TerrainSwamp:     "Sodden marshland thick with reeds and mist.",
	models.TerrainDesert:    "Sun-baked dunes stretching as far as the eye can see.",
	models.TerrainTundra:    "A frozen expanse swept by bitter winds.",
	models.TerrainShore:     "A windswept coastline of sand and shingle.",
}

var biomeFlavour = map[models.Biome]string{
	models.BiomeTemperate: "The climate is mild.",
	models.BiomeTropical:  "The air is heavy and warm.",
	models.BiomeArctic:    "Frost lingers all year round.",
	models.BiomeArid:      "Water is scarce here.",
	models.BiomeCoastal:   "The sea is never far away.",
	models.BiomeVolcanic:  "The ground is warm underfoot.",
}

var settlementPrefixes = map[models.Biome][]string{
	models.BiomeTemperate: {"Oak", "Green", "Bridge", "Stone", "Ash", "Clear"},
	models.BiomeTropical:  {"Palm", "Sun", "Wave", "Azure", "Bloom", "Coral"},
	models.BiomeArctic:    {"Frost", "Snow", "Ice", "Rime", "North", "White"},
	models.BiomeArid:      {"Dune", "Sand", "Rock", "Dry", "Sol", "Ochre"},
	models.BiomeCoastal:   {"Port", "Cape", "Bay", "Cove", "Shingle", "Salt"},
	models.BiomeVolcanic:  {"Forge", "Fire", "Cinder", "Flame", "Crag", "Ember"},
}

var settlementSuffixes = []string{"burg", "ton", "bridge", "mount", "vale", "fort", "haven", "mere", "field", "bank"}

var dungeonPrefixes = map[models.Terrain][]string{
	models.TerrainMountains: {"Spire", "Chasm", "Summit", "Abyss", "Cavern"},
	models.TerrainHills:     {"Burrow", "Tunnel", "Grotto", "Hollow", "Lair"},
	models.TerrainForest:    {"Thicket", "Glade", "Undergrowth", "Roots", "Wildwood"},
}

var defaultDungeonPrefixes = []string{"Keep", "Ruins", "Crypt", "Tomb", "Pit"}

var dungeonSuffixes = []string{"of Shadows", "of Despair", "of Echoes", "of Souls", "of the Lost", "of Silence"}

var landmarkNames = map[models.Terrain][]string{
	models.TerrainPlains:    {"Standing Stones", "Lone Oak", "Old Battlefield"},
	models.TerrainForest:    {"Elder Tree", "Hidden Shrine", "Moss Circle"},
	models.TerrainHills:     {"Watchtower Ruins", "Wind Cairn", "Barrow Mound"},
	models.TerrainMountains: {"Eagle Perch", "Frozen Altar", "Giant's Step"},
	models.TerrainDesert:    {"Buried Obelisk", "Sun Dial", "Bone Field"},
	models.TerrainShore:     {"Wreck of the Gull", "Tide Pillar", "Drowned Bell"},
	models.TerrainSwamp:     {"Sunken Idol", "Witch Hut", "Drowned Chapel"},
	models.TerrainTundra:    {"Ice Monolith", "Mammoth Graveyard", "Aurora Stone"},
}

var defaultLandmarkNames = []string{"Ancient Monument", "Forgotten Statue", "Weathered Pillar"}

var townDescriptions = map[models.Biome]string{
	models.BiomeTemperate: "A prosperous town surrounded by fertile fields.",
	models.BiomeTropical:  "A colourful town of palm-thatched roofs and spice markets.",
	models.BiomeArctic:    "A fortified town braced against the polar wind.",
	models.BiomeArid:      "An oasis town built around deep wells.",
	models.BiomeCoastal:   "A busy harbour town of merchants and fishers.",
	models.BiomeVolcanic:  "A mining town famed for its smiths and obsidian.",
}

var villageDescriptions = map[models.Biome]string{
	models.BiomeTemperate: "A quiet farming village nestled in a green valley.",
	models.BiomeTropical:  "A village of bamboo huts shaded by tall palms.",
	models.BiomeArctic:    "A huddle of houses sheltering each other from the cold.",
	models.BiomeArid:      "Sun-dried houses gathered around an ancestral well.",
	models.BiomeCoastal:   "A fishing village with boats drawn up on the beach.",
	models.BiomeVolcanic:  "A small village warmed by the ground beneath it.",
}

func pick(rng *RNG, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rng.IntN(len(options))]
}

func regionName(rng *RNG, t models.Terrain, b models.Biome) string {
	prefixes, ok := regionPrefixes[t]
	if !ok {
		prefixes = []string{"Lands of"}
	}
	return fmt.Sprintf("%s %s", pick(rng, prefixes), pick(rng, biomeSuffixes[b]))
}

func regionDescription(t models.Terrain, b models.Biome) string {
	desc, ok := regionDescriptions[t]
	if !ok {
		desc = "Uncharted wilderness."
	}
	return desc + " " + biomeFlavour[b]
}

func settlementName(rng *RNG, b models.Biome) string {
	return pick(rng, settlementPrefixes[b]) + pick(rng, settlementSuffixes)
}

func settlementDescription(kind models.POIKind, b models.Biome) string {
	if kind == models.POIKindTown {
		return townDescriptions[b]
	}
	return villageDescriptions[b]
}

func dungeonName(rng *RNG, t models.Terrain) string {
	prefixes, ok := dungeonPrefixes[t]
	if !ok {
		prefixes = defaultDungeonPrefixes
	}
	return pick(rng, prefixes) + " " + pick(rng, dungeonSuffixes)
}

func landmarkName(rng *RNG, t models.Terrain) string {
	names, ok := landmarkNames[t]
	if !ok {
		names = defaultLandmarkNames
	}
	return pick(rng, names)
}
