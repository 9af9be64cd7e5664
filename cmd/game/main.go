package main

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/hurricaneship/internal/config"
	"github.com/tomz197/hurricaneship/internal/logging"
	"github.com/tomz197/hurricaneship/internal/loop"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.ToStderr(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal("failed to enable raw mode", zap.Error(err))
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, loop.Options{Config: cfg, Logger: log})
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		log.Error("game error", zap.Error(runErr))
		os.Exit(1)
	}
}
