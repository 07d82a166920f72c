package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// stdoutTarget as the output filename writes P3 text to stdout
const stdoutTarget = "-"

// RenderScene renders a built-in scene to an image file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	out := ctx.String("out")
	if out != stdoutTarget {
		if err := renderer.CheckOutputFormat(out); err != nil {
			logger.Error(err)
			return err
		}
	}

	sceneID := ctx.String("scene")
	sc, err := scene.Build(sceneID, scene.Options{
		Width:           ctx.Int("width"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		Seed:            ctx.Int64("seed"),
		TexturePath:     ctx.String("texture"),
	})
	if err != nil {
		logger.Error(err)
		return err
	}

	config := sc.GetSamplingConfig()
	logger.Noticef("rendering %s at %dx%d, %d spp, depth %d -> %s",
		sceneID, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, out)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := renderer.NewRenderer(sc, integrator.NewPathTracingIntegrator(config), renderer.RenderConfig{
		TileSize:   ctx.Int("tile-size"),
		NumWorkers: ctx.Int("workers"),
		Seed:       ctx.Int64("seed"),
		Passes:     ctx.Int("passes"),
	})
	r.SetPassCallback(func(progress renderer.PassProgress) {
		logger.Infof("pass %d/%d: %d spp after %v", progress.Pass, progress.Passes, progress.SamplesPerPixel, progress.Stats.Elapsed)
	})
	fb, stats, err := r.Render(renderCtx)
	if err != nil {
		logger.Error(err)
		return err
	}

	if out == stdoutTarget {
		err = renderer.WritePPM(ctx.App.Writer, fb)
	} else {
		err = renderer.SaveImage(out, fb)
	}
	if err != nil {
		logger.Error(err)
		return err
	}

	displayRenderStats(stats, renderer.CalculateAverageLuminance(fb.Image()))
	return nil
}

func displayRenderStats(stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Samples", "Samples/pixel", "Workers", "Tiles", "Passes", "Avg luminance", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalPixels),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.1f", stats.AverageSamples),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Passes),
		fmt.Sprintf("%.4f", luminance),
		stats.Elapsed.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "SAMPLES/S", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
