package main

import (
	"os"
)

func main() {
	// slog is configured in slog.go via init()
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
