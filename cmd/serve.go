package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/web/server"
)

// Serve runs the web server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := server.NewServer(server.Config{
		Port:        ctx.Int("port"),
		NumWorkers:  ctx.Int("workers"),
		TexturePath: ctx.String("texture"),
	}).Start(serveCtx)
	if err != nil {
		logger.Error(err)
		return err
	}
	return nil
}
