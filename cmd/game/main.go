package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/miniapp-factory/square-invasion/internal/config"
	"github.com/miniapp-factory/square-invasion/internal/logging"
	"github.com/miniapp-factory/square-invasion/internal/loop"
)

// defaultLogFile keeps log output off the game screen.
const defaultLogFile = "square-invasion.log"

func main() {
	settings, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	if settings.Log.File == "" {
		settings.Log.File = defaultLogFile
	}
	logger, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	logger.Sugar().Infow("local game starting", "variant", settings.Game.Variant, "seed", settings.Game.Seed)
	err = loop.Run(bufio.NewReader(os.Stdin), os.Stdout,
		settings.Game.EngineFactory(logger.Named("engine")),
		loop.Options{Username: config.GetEnv("USER", ""), Log: logger})
	_ = term.Restore(fd, oldState)

	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
