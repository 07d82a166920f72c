package renderer

import (
	"fmt"
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"Exact fit", 64, 64, 32, 4},
		{"Ragged edges", 100, 50, 32, 8},
		{"Tile larger than image", 10, 10, 32, 1},
		{"Single row", 5, 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 0)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel is covered by exactly one tile
			coverage := make([]int, tt.width*tt.height)
			for id, tile := range tiles {
				if tile.ID != id {
					t.Errorf("Expected tile ID %d, got %d", id, tile.ID)
				}
				if !tile.Bounds.In(image.Rect(0, 0, tt.width, tt.height)) {
					t.Errorf("Tile %d bounds %v exceed the image", id, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y*tt.width+x]++
					}
				}
			}
			for i, count := range coverage {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestTileSamplerSeeding(t *testing.T) {
	a := NewTileGrid(64, 64, 32, 7)
	b := NewTileGrid(64, 64, 32, 7)

	for i := range a {
		if a[i].PassSampler(1).Get1D() != b[i].PassSampler(1).Get1D() {
			t.Errorf("Tile %d: same seed should give the same sequence", i)
		}
	}

	// Tile i of seed s and tile 0 of seed s+i share a generator seed
	shifted := NewTile(0, image.Rect(0, 0, 1, 1), 9)
	if NewTileGrid(64, 64, 32, 7)[2].PassSampler(1).Get1D() != shifted.PassSampler(1).Get1D() {
		t.Error("Expected tile samplers seeded with seed+ID")
	}

	c := NewTileGrid(64, 64, 32, 7)
	if c[0].PassSampler(1).Get1D() == c[1].PassSampler(1).Get1D() {
		t.Error("Neighbouring tiles should not share a random sequence")
	}
}

func TestTilePassSamplers(t *testing.T) {
	tiles := NewTileGrid(64, 64, 16, 3)

	// Every (tile, pass) pair draws its own sequence
	seen := make(map[float64]string)
	for _, tile := range tiles {
		for pass := 1; pass <= 4; pass++ {
			v := tile.PassSampler(pass).Get1D()
			key := fmt.Sprintf("tile %d pass %d", tile.ID, pass)
			if prev, ok := seen[v]; ok {
				t.Errorf("%s repeats the sequence of %s", key, prev)
			}
			seen[v] = key
		}
	}

	// A pass sampler is a pure function of seed, tile and pass
	if tiles[5].PassSampler(3).Get1D() != NewTileGrid(64, 64, 16, 3)[5].PassSampler(3).Get1D() {
		t.Error("Expected pass samplers to be reproducible")
	}
}
