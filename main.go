package main

import (
	"os"

	"github.com/Metrik-Labs-HQ/gtmforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
