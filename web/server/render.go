package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client. Zero values
// keep the scene's recommended settings.
type RenderRequest struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	TileSize        int
	Seed            int64
	Passes          int
}

// TileUpdate is sent via SSE for every finished tile
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageData   string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber  int    `json:"tileNumber"` // Tiles finished in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
}

// PassUpdate is sent via SSE after every progressive pass with the image so far
type PassUpdate struct {
	PassNumber      int    `json:"passNumber"`
	TotalPasses     int    `json:"totalPasses"`
	SamplesPerPixel int    `json:"samplesPerPixel"` // Cumulative samples per pixel
	ImageData       string `json:"imageData"`       // Base64 encoded PNG
	Stats           Stats  `json:"stats"`
	ElapsedMs       int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	Tiles            int     `json:"tiles"`
	Passes           int     `json:"passes"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// CompleteUpdate carries the final image
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRender renders a scene progressively and streams every finished tile
// via SSE, a "pass" event with the image after each pass and a final
// "complete" event. A client that disconnects cancels the render.
func (s *Server) handleRender(c echo.Context) error {
	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return sendSSEError(w, fmt.Sprintf("invalid request: %v", err))
	}

	sc, err := scene.Build(req.Scene, scene.Options{
		Width:           req.Width,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
		TexturePath:     s.config.TexturePath,
	})
	if err != nil {
		return sendSSEError(w, err.Error())
	}

	config := sc.GetSamplingConfig()
	r := renderer.NewRenderer(sc, integrator.NewPathTracingIntegrator(config), renderer.RenderConfig{
		TileSize:   req.TileSize,
		NumWorkers: s.config.NumWorkers,
		Seed:       req.Seed,
		Passes:     req.Passes,
	})

	// Stop encoding tiles once the stream is broken; the request context
	// cancels the render itself
	var streamErr error
	r.SetTileCallback(func(progress renderer.TileProgress) {
		if streamErr != nil {
			return
		}
		bounds := progress.Tile.Bounds
		imageData, err := imageToBase64PNG(progress.Framebuffer.TileImage(bounds))
		if err != nil {
			streamErr = err
			return
		}
		streamErr = sendSSEJSON(w, "tile", TileUpdate{
			TileX:       bounds.Min.X,
			TileY:       bounds.Min.Y,
			Width:       bounds.Dx(),
			Height:      bounds.Dy(),
			ImageData:   imageData,
			TileNumber:  progress.Done,
			TotalTiles:  progress.Total,
			PassNumber:  progress.Pass,
			TotalPasses: progress.Passes,
		})
	})
	r.SetPassCallback(func(progress renderer.PassProgress) {
		if streamErr != nil {
			return
		}
		img := progress.Framebuffer.Image()
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			streamErr = err
			return
		}
		streamErr = sendSSEJSON(w, "pass", PassUpdate{
			PassNumber:      progress.Pass,
			TotalPasses:     progress.Passes,
			SamplesPerPixel: progress.SamplesPerPixel,
			ImageData:       imageData,
			Stats:           newStats(progress.Stats, progress.Framebuffer, img),
			ElapsedMs:       progress.Stats.Elapsed.Milliseconds(),
		})
	})

	fb, stats, err := r.Render(c.Request().Context())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Infof("render of %s cancelled by client after %d tiles", req.Scene, stats.Tiles)
			return nil
		}
		return sendSSEError(w, fmt.Sprintf("render error: %v", err))
	}
	if streamErr != nil {
		return streamErr
	}

	img := fb.Image()
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		return sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
	}

	return sendSSEJSON(w, "complete", CompleteUpdate{
		ImageData: imageData,
		Stats:     newStats(stats, fb, img),
		ElapsedMs: stats.Elapsed.Milliseconds(),
	})
}

func newStats(stats renderer.RenderStats, fb *renderer.Framebuffer, img image.Image) Stats {
	return Stats{
		Width:            fb.Width,
		Height:           fb.Height,
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		AverageSamples:   stats.AverageSamples,
		Tiles:            stats.Tiles,
		Passes:           stats.Passes,
		Workers:          stats.Workers,
		SamplesPerSecond: stats.SamplesPerSecond(),
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	if _, ok := scene.Lookup(req.Scene); !ok {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(values, "tileSize", renderer.DefaultRenderConfig().TileSize, 1, maxTileSize); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", int(renderer.DefaultRenderConfig().Seed), 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	if req.Passes, err = parseIntParam(values, "passes", defaultPasses, 1, maxPasses); err != nil {
		return nil, err
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// sendSSEJSON sends a JSON-encoded SSE event
func sendSSEJSON(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func sendSSEError(w http.ResponseWriter, message string) error {
	logger.Warningf("render request failed: %s", message)
	return sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("server: streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
