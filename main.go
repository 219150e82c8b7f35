package main

import (
	"log/slog"
	"os"

	"brickmosaic/mosaic"
	"brickmosaic/palette"

	"github.com/alecthomas/kong"
)

var cli struct {
	LogLevel string `help:"Diagnostics level. info logs every block, warn keeps only problems." enum:"debug,info,warn,error" default:"info"`

	Render  mosaic.CLICmd  `cmd:"" default:"withargs" help:"Turn a picture into a brick mosaic"`
	Palette palette.CLICmd `cmd:"" help:"Inspect or export the brick colors"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("brickmosaic"),
		kong.Description("Pixelates pictures into blocks of brick colors."),
		kong.UsageOnError(),
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.FatalIfErrorf(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := kctx.Run(logger); err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
