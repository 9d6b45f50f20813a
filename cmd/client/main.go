package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"listqueue/broker"
	"listqueue/client"
	"listqueue/config"
	"listqueue/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "client failed:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	_ = godotenv.Load()

	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := logging.New("client", conf.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var input io.Reader = os.Stdin
	if len(conf.ClientsInputPath) != 0 {
		f, err := os.Open(conf.ClientsInputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	} else {
		fmt.Println("Write clients tasks here in format <clientId> <item>")
	}

	newClient := func() (*client.Client, error) {
		queue, err := broker.New(ctx, conf, logger)
		if err != nil {
			return nil, err
		}
		return client.NewClient(queue), nil
	}

	idle := time.Duration(conf.ClientIdleSeconds) * time.Second
	cm := client.NewClientsManager(input, idle, newClient, logger)
	defer cm.Close()
	return cm.ListenClientActions(ctx)
}
