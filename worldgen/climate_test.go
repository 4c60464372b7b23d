package worldgen

import (
	"testing"

	"beast-ride-saga/server/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name                  string
		elev, hum, temp, gate float64
		want                  models.Terrain
		walkable              bool
	}{
		{"deep water", 10, 50, 50, 0.5, models.TerrainOcean, false},
		{"shallow water", 29.9, 50, 50, 0.5, models.TerrainOcean, false},
		{"beach", 32, 50, 50, 0.5, models.TerrainShore, true},
		{"glacier", 90, 50, 20, 0.5, models.TerrainIce, false},
		{"peak", 90, 50, 50, 0.5, models.TerrainPeak, false},
		{"mountain pass", 80, 50, 50, 0.1, models.TerrainMountains, true},
		{"mountain wall", 80, 50, 50, 0.9, models.TerrainMountains, false},
		{"rocky desert", 70, 20, 80, 0.5, models.TerrainDesert, true},
		{"rocky hills", 70, 20, 50, 0.5, models.TerrainHills, true},
		{"highland forest", 70, 50, 50, 0.5, models.TerrainForest, true},
		{"desert", 50, 20, 80, 0.5, models.TerrainDesert, true},
		{"steppe", 50, 20, 50, 0.5, models.TerrainPlains, true},
		{"cold waste", 50, 20, 10, 0.5, models.TerrainTundra, true},
		{"prairie", 50, 45, 50, 0.5, models.TerrainPlains, true},
		{"cold prairie", 50, 45, 10, 0.5, models.TerrainTundra, true},
		{"marsh", 50, 90, 50, 0.5, models.TerrainSwamp, true},
		{"woodland", 50, 70, 50, 0.5, models.TerrainForest, true},
		{"jungle", 50, 90, 80, 0.5, models.TerrainForest, true},
	}
	for _, tc := range cases {
		got := Classify(tc.elev, tc.hum, tc.temp, tc.gate)
		if got.Terrain != tc.want || got.Walkable != tc.walkable {
			t.Errorf("%s: got %s walkable=%v, want %s walkable=%v", tc.name, got.Terrain, got.Walkable, tc.want, tc.walkable)
		}
		if got.Walkable && got.MovementCost >= models.ImpassableCost {
			t.Errorf("%s: walkable with cost %v", tc.name, got.MovementCost)
		}
		if !got.Walkable && got.MovementCost < models.ImpassableCost {
			t.Errorf("%s: blocked with cost %v", tc.name, got.MovementCost)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	a := Classify(63, 41, 55, 0.3)
	b := Classify(63, 41, 55, 0.3)
	if a != b {
		t.Fatalf("classification differs: %+v vs %+v", a, b)
	}
}

func TestClassifyBiome(t *testing.T) {
	cases := []struct {
		terrain         models.Terrain
		hum, temp, roll float64
		want            models.Biome
	}{
		{models.TerrainShore, 50, 50, 0.5, models.BiomeCoastal},
		{models.TerrainMountains, 50, 50, 0.01, models.BiomeVolcanic},
		{models.TerrainMountains, 50, 50, 0.5, models.BiomeTemperate},
		{models.TerrainPlains, 50, 10, 0.5, models.BiomeArctic},
		{models.TerrainDesert, 10, 80, 0.5, models.BiomeArid},
		{models.TerrainForest, 80, 80, 0.5, models.BiomeTropical},
	}
	for _, tc := range cases {
		if got := ClassifyBiome(tc.terrain, tc.hum, tc.temp, tc.roll); got != tc.want {
			t.Errorf("%s hum=%v temp=%v: got %s, want %s", tc.terrain, tc.hum, tc.temp, got, tc.want)
		}
	}
}

func TestSmoothKeepsRangeAndBlends(t *testing.T) {
	f := newField(5, 5)
	f.set(2, 2, 100)
	out := smooth(f, 2)
	centre := out.at(2, 2)
	if centre <= 70 || centre >= 100 {
		t.Fatalf("centre %v should be blended below 100 and above 70", centre)
	}
	for _, v := range out.values {
		if v < 0 || v > 100 {
			t.Fatalf("smoothed value %v out of range", v)
		}
	}
}
