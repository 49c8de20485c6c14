package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Render a scene to an image file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}
	arg := ctx.Args().First()

	sc, err := loadScene(arg)
	if err != nil {
		return err
	}
	sc.ConstructBVH()

	integCfg := integrator.DefaultConfig()
	integCfg.MaxDepth = ctx.Int("max-depth")
	integCfg.SoftShadows = ctx.Bool("soft-shadows")
	integCfg.ShadowSamples = ctx.Int("shadow-samples")

	renderCfg := renderer.DefaultConfig()
	renderCfg.DepthOfField = ctx.Bool("dof")
	renderCfg.DOFSamples = ctx.Int("dof-samples")
	renderCfg.NumWorkers = ctx.Int("workers")
	renderCfg.TileSize = ctx.Int("tile-size")
	renderCfg.Seed = ctx.Int64("seed")

	if integCfg.MaxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative, got %d", integCfg.MaxDepth)
	}

	r := renderer.NewRenderer(sc, integrator.NewWhittedIntegrator(sc, integCfg), renderCfg)
	buffer, stats := r.Render()

	out := outputPath(arg, ctx.String("out"))
	if err := loaders.SaveImage(out, buffer.ToRGBA()); err != nil {
		return err
	}

	displayRenderStats(stats)
	logger.Noticef("average luminance %.4f, image written to %s", buffer.AverageLuminance(), out)
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Primary rays", "Tiles", "Workers", "Rays/sec", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.PrimaryRays),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.0f", stats.RaysPerSecond()),
		stats.Duration.String(),
	})
	if slowest, ok := stats.SlowestTile(); ok {
		table.SetFooter([]string{"", "", "", "SLOWEST TILE", fmt.Sprintf("#%d %v", slowest.ID, slowest.Bounds), slowest.Duration.String()})
	}

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
