package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var (
	serverURL   = flag.String("server", "ws://localhost:8080/ws/voice", "Voice stream WebSocket URL")
	token       = flag.String("token", "", "Access token for the session")
	script      = flag.String("script", "", "File with one utterance per line (default: built-in demo)")
	interactive = flag.Bool("interactive", false, "Type utterances instead of running a script")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "A -token is required; log in via /api/v1/auth/login first")
		os.Exit(1)
	}

	sim := NewSimulator(&SimulatorConfig{
		ServerURL:   *serverURL,
		Token:       *token,
		ScriptPath:  *script,
		Interactive: *interactive,
	}, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		sim.Stop()
		os.Exit(0)
	}()

	if err := sim.Connect(); err != nil {
		logger.Fatal("Failed to connect to server", zap.Error(err))
	}

	if err := sim.Run(); err != nil {
		logger.Fatal("Simulator failed", zap.Error(err))
	}
}
