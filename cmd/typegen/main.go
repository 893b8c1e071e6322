package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/usestring/typegen-mcp/internal/cli"
	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/internal/logging"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	env := config.Load()

	cfg, err := cli.ParseArgs(os.Args[1:], env)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	level := env.LogLevel
	if cfg.Verbose {
		level = "debug"
	}
	logger, closeLog, err := logging.New(logging.Config{
		Level:      level,
		Format:     env.LogFormat,
		FilePath:   env.LogFile,
		MaxSizeMB:  env.LogMaxSizeMB,
		MaxBackups: env.LogMaxBackups,
		MaxAgeDays: env.LogMaxAgeDays,
		Compress:   env.LogCompress,
		Output:     os.Stderr,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := cli.NewRunner(cli.NewFileWriter(), os.Stdin, os.Stdout, logger)
	if err := runner.Run(ctx, cfg); err != nil {
		logger.Error("generation failed", "error", err)
		closeLog()
		os.Exit(1)
	}
}
