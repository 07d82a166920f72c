package renderer

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output file extensions with no encoder
var ErrUnsupportedFormat = errors.New("renderer: unsupported output format")

// WritePPM writes the framebuffer as a plain-text P3 image, top row first
func WritePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := ToneMap(fb.Pixels[y][x].GetColor())
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WritePNG writes the framebuffer as a PNG image
func WritePNG(w io.Writer, fb *Framebuffer) error {
	return png.Encode(w, fb.Image())
}

// WriteImage encodes the framebuffer in the format named by ext
// (".ppm", ".png", ".bmp", ".tif" or ".tiff")
func WriteImage(w io.Writer, ext string, fb *Framebuffer) error {
	switch strings.ToLower(ext) {
	case ".ppm":
		return WritePPM(w, fb)
	case ".png":
		return WritePNG(w, fb)
	case ".bmp":
		return bmp.Encode(w, fb.Image())
	case ".tif", ".tiff":
		return tiff.Encode(w, fb.Image(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
}

// CheckOutputFormat reports whether SaveImage has an encoder for filename's extension
func CheckOutputFormat(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ppm", ".png", ".bmp", ".tif", ".tiff":
		return nil
	}
	return fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
}

// SaveImage writes the framebuffer to filename, picking the encoder from the extension
func SaveImage(filename string, fb *Framebuffer) error {
	if err := CheckOutputFormat(filename); err != nil {
		return err
	}
	ext := filepath.Ext(filename)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteImage(f, ext, fb); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return f.Close()
}
