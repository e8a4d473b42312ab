package isolines

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb/project"

	"github.com/terrafold/contour-utils/internal/contour"
	"github.com/terrafold/contour-utils/internal/export"
	"github.com/terrafold/contour-utils/internal/grid"
	"github.com/terrafold/contour-utils/internal/utils"
)

// Run is the lines subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	inPtr := flagSet.String("in", "", "Path to input ESRI ASCII grid (.asc or .asc.gz)")
	outPtr := flagSet.String("out", "", "Path to output GeoJSON file")
	levelsPtr := flagSet.String("levels", "", "Comma-separated list of contour levels")
	stepPtr := flagSet.Float64("step", 0, "Contour every multiple of step across the grid range")
	palettePtr := flagSet.Int("palette", 256, "Palette size for color indices")
	cellsPtr := flagSet.Bool("cells", false, "Treat samples as cell values instead of postings")
	poleFirstPtr := flagSet.Bool("pole-first-row", false, "Average the first row (pole row)")
	poleLastPtr := flagSet.Bool("pole-last-row", false, "Average the last row (pole row)")
	wrapPtr := flagSet.Bool("wrap", false, "Raster spans a full period in the column direction")
	mercatorPtr := flagSet.Bool("mercator", false, "Project lon/lat output to web mercator")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *inPtr == "" || *outPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	if !utils.IsFile(*inPtr) {
		log.Fatal(errors.New("Input raster is not a valid file"))
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

	// contour lines
	timer = time.Now()
	fmt.Println("▶️  Tracing contour lines")
	lines, err := contour.Trace(&raster.Grid, levels, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("✔️  Traced %d levels in %s\n", len(lines), time.Since(timer).String())

	lines = contour.MapLines(lines, raster.Projection(), false)
	if *mercatorPtr {
		lines = contour.MapLines(lines, project.WGS84.ToMercator, false)
	}

	if err := export.WriteFeatureCollection(*outPtr, export.Lines(lines, *palettePtr)); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
