package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// ErrInvalidConfig is returned for non-positive image sizes, sample counts or depths
var ErrInvalidConfig = errors.New("renderer: invalid render settings")

// RenderConfig contains configuration for parallel tile rendering
type RenderConfig struct {
	TileSize       int   // Size of each square tile in pixels
	NumWorkers     int   // Number of parallel workers (0 = use CPU count)
	Seed           int64 // Base seed; tile i draws from seed+i
	Passes         int   // Progressive passes (<= 1 renders in one pass)
	InitialSamples int   // Samples per pixel after the first pass (0 = 1)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
		Passes:     1,
	}
}

// TileProgress reports a tile finished within a pass. The tile's framebuffer
// region is not written again until the next pass starts.
type TileProgress struct {
	Tile         *Tile
	Pass, Passes int
	Done, Total  int // Tiles finished in this pass, out of Total
	Framebuffer  *Framebuffer
}

// Renderer renders a prepared scene into a framebuffer using a worker pool
type Renderer struct {
	scene        core.Scene
	integrator   core.Integrator
	config       RenderConfig
	tileCallback func(TileProgress)
	passCallback func(PassProgress)
}

// NewRenderer creates a renderer for the scene
func NewRenderer(scene core.Scene, integrator core.Integrator, config RenderConfig) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	return &Renderer{
		scene:      scene,
		integrator: integrator,
		config:     config,
	}
}

// SetTileCallback registers a function called after every finished tile.
// Calls come from the goroutine running Render, one at a time.
func (r *Renderer) SetTileCallback(callback func(TileProgress)) {
	r.tileCallback = callback
}

// SetPassCallback registers a function called after every finished pass,
// from the goroutine running Render
func (r *Renderer) SetPassCallback(callback func(PassProgress)) {
	r.passCallback = callback
}

// Validate checks the sampling settings of a scene
func Validate(config core.SamplingConfig) error {
	switch {
	case config.Width <= 0 || config.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, config.Width, config.Height)
	case config.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, config.SamplesPerPixel)
	case config.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, config.MaxDepth)
	}
	return nil
}

// Render renders every tile of the image in one or more progressive passes
// and returns the framebuffer. If ctx is cancelled the partial framebuffer is
// returned together with ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	config := r.scene.GetSamplingConfig()
	if err := Validate(config); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	fb := NewFramebuffer(config.Width, config.Height)
	tiles := NewTileGrid(config.Width, config.Height, r.config.TileSize, r.config.Seed)
	schedule := NewPassSchedule(config.SamplesPerPixel, r.config.Passes, r.config.InitialSamples)

	pool := NewWorkerPool(r.scene, r.integrator, r.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	logger.Infof("rendering %dx%d at %d spp, depth %d: %d tiles in %d passes on %d workers",
		config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, len(tiles), schedule.Passes, pool.GetNumWorkers())

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	for pass := 1; pass <= schedule.Passes; pass++ {
		renderErr = r.renderPass(pool, tiles, fb, pass, schedule, &stats)
		if renderErr != nil {
			break
		}
		stats.Passes = pass

		logger.Debugf("pass %d/%d done at %d spp", pass, schedule.Passes, schedule.SamplesAfter(pass))
		if r.passCallback != nil {
			passStats := stats
			passStats.Elapsed = time.Since(startTime)
			r.passCallback(PassProgress{
				Pass:            pass,
				Passes:          schedule.Passes,
				SamplesPerPixel: schedule.SamplesAfter(pass),
				Stats:           passStats,
				Framebuffer:     fb,
			})
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(startTime)
	if renderErr != nil {
		logger.Warningf("render stopped after %d tiles in %d passes: %v", stats.Tiles, stats.Passes, renderErr)
		return fb, stats, renderErr
	}

	logger.Infof("render finished in %v (%.0f samples/s)", stats.Elapsed, stats.SamplesPerSecond())
	return fb, stats, nil
}

// renderPass submits every tile for one pass and waits for all of them, so
// passes never overlap on a pixel
func (r *Renderer) renderPass(pool *WorkerPool, tiles []*Tile, fb *Framebuffer, pass int, schedule PassSchedule, stats *RenderStats) error {
	samples := schedule.SamplesFor(pass)
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Pass: pass, Samples: samples, TaskID: taskID, Framebuffer: fb})
	}

	var passErr error
	done := 0
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return errors.New("renderer: worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if passErr == nil {
				passErr = result.Error
			}
			continue
		}

		tileStats := result.Stats
		if pass > 1 {
			tileStats.TotalPixels = 0 // counted by the first pass
		}
		stats.Add(tileStats)
		done++

		logger.Debugf("pass %d: tile %d/%d done (%d pixels)", pass, done, len(tiles), result.Stats.TotalPixels)
		if r.tileCallback != nil {
			r.tileCallback(TileProgress{
				Tile:        tiles[result.TaskID],
				Pass:        pass,
				Passes:      schedule.Passes,
				Done:        done,
				Total:       len(tiles),
				Framebuffer: fb,
			})
		}
	}
	return passErr
}
