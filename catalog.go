package main

import (
	"context"
	"fmt"
	"os"

	"catalog/pkg/app"
	"catalog/pkg/logger"
)

// main exposes a root-level entry point so the tool can be started with `go run catalog.go`.
func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := app.Run(context.Background(), os.Args[1:], log); err != nil {
		log.Fatal("catalog stopped with error", "error", err)
	}
}
