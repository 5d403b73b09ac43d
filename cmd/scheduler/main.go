package main

import (
	"fmt"
	"log"
	"os"

	"github.com/example/daysched/internal/cli"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	app := cli.NewApp()
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
