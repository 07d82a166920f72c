package renderer

import (
	"context"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      core.Scene
	integrator core.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene core.Scene, integrator core.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integrator,
	}
}

// RenderTile adds task.Samples samples to every pixel in the tile, writing
// only inside the tile bounds. Cancellation is checked between scanlines; rows
// finished before that keep their samples.
func (tr *TileRenderer) RenderTile(ctx context.Context, task TileTask) (RenderStats, error) {
	camera := tr.scene.GetCamera()
	tile, fb := task.Tile, task.Framebuffer
	samplesPerPixel := task.Samples
	sampler := tile.PassSampler(task.Pass)

	stats := RenderStats{}
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			ps := fb.At(i, j)
			for s := 0; s < samplesPerPixel; s++ {
				ray := camera.GetRay(i, j, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
			}
			stats.TotalPixels++
			stats.TotalSamples += samplesPerPixel
		}
	}

	stats.Tiles = 1
	stats.AverageSamples = float64(samplesPerPixel)
	return stats, nil
}
