package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), y=0 is the top row
	Seed   int64           // seed+id; pass samplers derive from it
}

// NewTile creates a tile seeded with seed+id, so the image depends only on
// the seed and not on which worker renders the tile
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Seed:   seed + int64(id),
	}
}

// PassSampler returns the random source for one progressive pass of the tile.
// Pass 1 uses the tile seed itself; later passes move it by pass-1 in the high
// 32 bits, so no (tile, pass) pair shares a sequence below 2^32 tiles.
func (t *Tile) PassSampler(pass int) core.Sampler {
	return core.NewSeededSampler(t.Seed + int64(pass-1)<<32)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
