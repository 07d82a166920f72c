package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	defaults := renderer.DefaultRenderConfig()

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene",
			Description: `
Build one of the built-in scenes and render it with the recursive path
tracer. Width, samples and depth default to the scene's recommended settings.

Use "-" as the output file to write a plain-text PPM image to stdout.`,
			Action: cmd.RenderScene,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene",
					Value: "random-spheres",
					Usage: "scene to render (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width; the height follows the scene's aspect ratio (0 = scene default)",
				},
				cli.IntFlag{
					Name:   "spp",
					Usage:  "samples per pixel (0 = scene default)",
					EnvVar: "PATHTRACER_SPP",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum bounce depth (0 = scene default)",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "render workers (0 = one per CPU)",
					EnvVar: "PATHTRACER_WORKERS",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: defaults.TileSize,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: defaults.Passes,
					Usage: "progressive passes splitting the samples per pixel",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: defaults.Seed,
					Usage: "random seed for scene generation and sampling",
				},
				cli.StringFlag{
					Name:  "texture",
					Usage: "image file for textured scenes (default earthmap.jpg)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.ppm",
					Usage: "output file (.ppm, .png, .bmp, .tif or - for stdout)",
				},
			},
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "serve",
			Usage:  "serve the render API over HTTP",
			Action: cmd.Serve,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: server.DefaultConfig().Port,
					Usage: "port to listen on",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "render workers per request (0 = one per CPU)",
					EnvVar: "PATHTRACER_WORKERS",
				},
				cli.StringFlag{
					Name:  "texture",
					Usage: "image file for textured scenes (default earthmap.jpg)",
				},
			},
		},
	}

	return app
}
