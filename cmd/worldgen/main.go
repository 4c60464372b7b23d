// Command worldgen generates a world from flags and writes it as a snapshot.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"beast-ride-saga/server/models"
	"beast-ride-saga/server/persistence"
	"beast-ride-saga/server/worldgen"
)

func main() {
	var (
		width   = flag.Int("width", 120, "map width in cells")
		height  = flag.Int("height", 90, "map height in cells")
		seed    = flag.Int64("seed", 0, "generation seed (0 picks one from the clock)")
		passes  = flag.Int("passes", worldgen.DefaultDiffusionPasses, "elevation diffusion passes")
		noise   = flag.Float64("noise", worldgen.DefaultNoiseAmplitude, "elevation noise amplitude")
		rivers  = flag.Int("rivers", 0, "river count (0 derives it from the map size)")
		name    = flag.String("name", "world", "world name stored in the snapshot header")
		out     = flag.String("out", "", "snapshot path (default <name>.snap.zst)")
		schema  = flag.String("schema", "", "validate the generated map against this JSON schema")
		verbose = flag.Bool("v", false, "log generation steps")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[worldgen] ", log.LstdFlags)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	p := worldgen.Params{
		Width:           *width,
		Height:          *height,
		Seed:            *seed,
		DiffusionPasses: *passes,
		NoiseAmplitude:  *noise,
		RiverCount:      *rivers,
	}
	if *verbose {
		p.Logger = logger
	}

	start := time.Now()
	w, err := worldgen.Generate(p)
	if err != nil {
		logger.Fatalf("generate: %v", err)
	}
	elapsed := time.Since(start)

	if *schema != "" {
		if err := validate(*schema, w); err != nil {
			logger.Fatalf("schema: %v", err)
		}
	}

	path := *out
	if path == "" {
		path = persistence.SnapshotPath(".", *name)
	}
	if err := persistence.WriteSnapshot(path, *name, w); err != nil {
		logger.Fatalf("write snapshot: %v", err)
	}

	summarize(os.Stdout, w, path, elapsed)
}

func validate(schemaPath string, w *models.WorldMap) error {
	s, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return err
	}
	raw, err := persistence.MarshalWorld(w)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return s.Validate(doc)
}

func summarize(f *os.File, w *models.WorldMap, path string, elapsed time.Duration) {
	counts := make(map[models.Terrain]int)
	for _, c := range w.Cells {
		counts[c.Terrain]++
	}

	fmt.Fprintf(f, "seed %d, %dx%d, generated in %s, written to %s\n\n", w.Seed, w.Width, w.Height, elapsed.Round(time.Millisecond), path)

	tw := tabwriter.NewWriter(f, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TERRAIN\tCELLS\tSHARE")
	for _, t := range models.AllTerrains {
		if n := counts[t]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", t, n, 100*float64(n)/float64(len(w.Cells)))
		}
	}
	tw.Flush()

	fmt.Fprintf(f, "\n%d regions\n", len(w.Regions))
	for _, r := range w.Regions {
		fmt.Fprintf(f, "  %-10s %-28s %s/%s at (%d,%d)\n", r.ID, r.Name, r.Biome, r.MainTerrainType, r.CenterX, r.CenterY)
	}
	fmt.Fprintf(f, "\n%d points of interest\n", len(w.PointsOfInterest))
	for _, p := range w.PointsOfInterest {
		fmt.Fprintf(f, "  %-14s %-9s %-28s (%d,%d) links %d\n", p.ID, p.Kind, p.Name, p.X, p.Y, len(p.ConnectedTo))
	}
	pos := w.CurrentPlayerPosition
	fmt.Fprintf(f, "\nplayer starts at (%d,%d)\n", pos.X, pos.Y)
}
