package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"listqueue/broker"
	"listqueue/config"
	"listqueue/logging"
	"listqueue/registry"
	"listqueue/server"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "server failed:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Load env before the config so ${VARS} in it resolve
	_ = godotenv.Load()

	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.New("server", conf.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	queue, err := broker.New(ctx, conf, logger)
	if err != nil {
		return err
	}
	if c, ok := queue.(io.Closer); ok {
		defer c.Close()
	}

	var logFile io.Writer = io.Discard
	if conf.LogFilePath != "" {
		f, err := os.OpenFile(conf.LogFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return err
		}
		defer f.Close()
		logFile = f
	}

	s := server.NewServer(queue, registry.New(conf.Shards), logFile, logger)
	logger.Info("Server started", "broker", conf.Broker, "shards", conf.Shards)
	return s.StartServer(ctx)
}
