package tiles

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/terrafold/contour-utils/internal/contour"
	"github.com/terrafold/contour-utils/internal/export"
	"github.com/terrafold/contour-utils/internal/grid"
	"github.com/terrafold/contour-utils/internal/utils"
)

// Run is the tiles subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	inPtr := flagSet.String("in", "", "Path to input ESRI ASCII grid (.asc or .asc.gz)")
	outPtr := flagSet.String("out", "", "Path to output directory")
	levelsPtr := flagSet.String("levels", "", "Comma-separated list of contour levels")
	stepPtr := flagSet.Float64("step", 0, "Contour every multiple of step across the grid range")
	palettePtr := flagSet.Int("palette", 256, "Palette size for color indices")
	maxLodPtr := flagSet.Uint("max-lod", 5, "Highest level of detail to build tiles for")
	cellsPtr := flagSet.Bool("cells", false, "Treat samples as cell values instead of postings")
	poleFirstPtr := flagSet.Bool("pole-first-row", false, "Average the first row (pole row)")
	poleLastPtr := flagSet.Bool("pole-last-row", false, "Average the last row (pole row)")
	wrapPtr := flagSet.Bool("wrap", false, "Raster spans a full period in the column direction")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *inPtr == "" || *outPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if !utils.IsFile(*inPtr) {
		log.Fatal(errors.New("Input raster is not a valid file"))
	}

	if !utils.IsDirectory(*outPtr) {
		log.Fatal(errors.New("Output directory doesn't exist"))
	}

	opts := utils.BuildOptions(*cellsPtr, *poleFirstPtr, *poleLastPtr, *wrapPtr)

	// load raster
	timer := time.Now()
	fmt.Println("▶️  Loading raster")
	raster, err := grid.Read(*inPtr)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Loaded raster in", time.Since(timer).String())

	levels, err := utils.BuildLevels(&raster.Grid, *levelsPtr, *stepPtr)
	if err != nil {
		log.Fatal(err)
	}

	collections := make(map[string]*geojson.FeatureCollection)

	// contour lines
	timer = time.Now()
	fmt.Println("▶️  Tracing contour lines")
	lines, err := contour.Trace(&raster.Grid, levels, opts)
	if err != nil {
		log.Fatal(err)
	}
	collections["contours"] = export.Lines(lines, *palettePtr)
	fmt.Printf("✔️  Traced %d levels in %s\n", len(lines), time.Since(timer).String())

	// interval polygons
	timer = time.Now()
	fmt.Println("▶️  Building interval polygons")
	intervals, err := contour.BuildIntervals(&raster.Grid, lines, levels, opts)
	if err != nil {
		log.Fatal(err)
	}
	collections["intervals"] = export.Intervals(intervals, *palettePtr)
	fmt.Printf("✔️  Built %d intervals in %s\n", len(intervals), time.Since(timer).String())

	// peaks
	timer = time.Now()
	fmt.Println("▶️  Collecting peaks")
	collections["peaks"] = Peaks(&raster.Grid)
	fmt.Println("✔️  Collected peaks in", time.Since(timer).String())

	// print loaded layers
	layerNames := make([]string, 0, len(collections))
	for layerName := range collections {
		layerNames = append(layerNames, layerName)
	}
	sort.Strings(layerNames)
	fmt.Printf("ℹ️  Built the following layers (%d): %s\n", len(collections), strings.Join(layerNames, ", "))

	extent := float64(raster.Cols - 1)
	if raster.Rows > raster.Cols {
		extent = float64(raster.Rows - 1)
	}

	// build tiles
	timer = time.Now()
	fmt.Println("▶️  Building vector tiles")
	BuildPyramid(*outPtr, collections, uint8(*maxLodPtr), extent)
	fmt.Println("✔️  Built vector tiles in", time.Since(timer).String())

	// write tile.json
	timer = time.Now()
	fmt.Println("▶️  Creating tile.json")
	name := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(*inPtr), ".gz"), ".asc")
	if err := writeTileJSON(*outPtr, name, uint8(*maxLodPtr), layerNames); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Created tile.json in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
