package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("server")

// defaultScene is rendered when a request names no scene
const defaultScene = "cornell-box"

// Request limits shared by the render and inspect endpoints
const (
	minWidth, maxWidth = 16, 2000
	maxSamples         = 10000
	maxDepth           = 1000
	maxTileSize        = 512
	defaultPasses      = 7 // Clamped to the sample budget by the pass schedule
	maxPasses          = 100
)

// Config contains the web server settings
type Config struct {
	Port        int
	NumWorkers  int    // Render workers per request (0 = auto)
	TexturePath string // Image file for textured scenes
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{Port: 8080}
}

// Server exposes the scene registry and the renderer over HTTP
type Server struct {
	config Config
	echo   *echo.Echo
}

// NewServer creates a new web server and registers its routes
func NewServer(config Config) *Server {
	s := &Server{config: config, echo: echo.New()}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(corsMiddleware)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves requests until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()
	logger.Noticef("serving on http://localhost%s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Notice("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Addr returns the listening address once Start has bound it, or nil
func (s *Server) Addr() net.Addr {
	return s.echo.ListenerAddr()
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SceneEntry describes one registered scene
type SceneEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// handleScenes lists the scene registry
func (s *Server) handleScenes(c echo.Context) error {
	infos := scene.List()
	entries := make([]SceneEntry, len(infos))
	for i, info := range infos {
		entries[i] = SceneEntry{ID: info.ID, Name: info.Name, Description: info.Description, Group: info.Group}
	}
	return c.JSON(http.StatusOK, entries)
}

// handleSceneConfig returns the recommended settings of a scene together
// with the request limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneID := c.QueryParam("scene")
	if sceneID == "" {
		sceneID = defaultScene
	}

	info, ok := scene.Lookup(sceneID)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown scene: " + sceneID})
	}

	sc, err := scene.Build(sceneID, scene.Options{TexturePath: s.config.TexturePath})
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	config := sc.GetSamplingConfig()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": sceneID,
		"name":  info.Name,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"primitives":      sc.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minWidth, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 1, "max": maxDepth},
			"tileSize":        map[string]int{"min": 1, "max": maxTileSize},
			"passes":          map[string]int{"min": 1, "max": maxPasses},
		},
	})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
