// Package main is the entry point for the MentorAI service.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/kart-io/mentor-ai/internal/mentor"
)

func main() {
	if err := mentor.NewApp().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
