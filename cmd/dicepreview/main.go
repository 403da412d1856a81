// Package main renders a contact sheet of the die, one view per face, to a
// png, webp or tga file.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/carved-dice/internal/config"
	"github.com/Faultbox/carved-dice/internal/dice"
	"github.com/Faultbox/carved-dice/internal/dice/geometry"
	"github.com/Faultbox/carved-dice/internal/dice/outcome"
	"github.com/Faultbox/carved-dice/internal/dice/panel"
	"github.com/Faultbox/carved-dice/internal/engine/mesh"
	"github.com/Faultbox/carved-dice/internal/engine/raster"
	"github.com/Faultbox/carved-dice/internal/logger"
)

var flagOut = flag.String("out", "dice.webp", "Output image (.png, .webp or .tga)")

const sheetColumns = 3

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	die, err := geometry.Build(cfg.Shape)
	if err != nil {
		logger.Error("failed to build die", zap.Error(err))
		os.Exit(1)
	}
	pips, err := panel.Build(cfg.Shape)
	if err != nil {
		logger.Error("failed to build pip panels", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("meshes built",
		zap.Int("die_vertices", len(die.Vertices)),
		zap.Int("die_triangles", die.TriangleCount()),
		zap.Uint64("fingerprint", die.Fingerprint()))

	size := cfg.Preview.Size
	sheet := image.NewNRGBA(image.Rect(0, 0, size*sheetColumns, size*len(dice.Faces)/sheetColumns))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, face := range dice.Faces {
		g.Go(func() error {
			view := renderFace(cfg.Preview, die, pips, face)
			at := image.Pt(i%sheetColumns*size, i/sheetColumns*size)
			// Each view owns a disjoint rectangle of the sheet.
			draw.Draw(sheet, view.Bounds().Add(at), view, image.Point{}, draw.Src)
			logger.Debug("face rendered", zap.Int("face", int(face)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}

	if err := raster.Save(*flagOut, sheet); err != nil {
		logger.Error("failed to write image", zap.String("path", *flagOut), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("preview written", zap.String("path", *flagOut))
}

// renderFace draws the die resting with face up.
func renderFace(p config.PreviewConfig, die, pips *mesh.Mesh, face dice.Face) *image.NRGBA {
	ss := p.Size * p.Supersample
	cam := raster.OrbitCamera(p.Distance, p.Elevation, p.Azimuth, p.FOV)
	r := raster.New(ss, ss, cam, raster.DefaultLight(p.Light), mesh.ColorHex(p.Background))

	pose := outcome.Orientation(face).ToMat4()
	r.Draw(die, pose, geometry.Material())
	r.Draw(pips, pose, panel.Material())
	return raster.Downsample(r.Image(), p.Size)
}
