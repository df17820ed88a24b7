package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixcanvas/inspect"
	"pixcanvas/parallel"
	"pixcanvas/render"
)

type CLI struct {
	Workers  int    `help:"Number of workers, 0 for one per CPU" default:"0"`
	LogLevel string `help:"Minimum log level" enum:"debug,info,warn,error" default:"info"`

	Render  render.CLICmd  `cmd:"" help:"Draw a scene into a canvas and save its bitmap"`
	Inspect inspect.CLICmd `cmd:"" help:"Load images into canvases and report their layout"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pixcanvas"),
		kong.Description("Planar float canvas rendering and inspection."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	pool := parallel.Start(cli.Workers)
	slog.Info("running", "command", kctx.Command(), "workers", pool.Workers)

	err := kctx.Run(pool, pool.Do, pool.Wait)
	pool.Wait(true)
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
