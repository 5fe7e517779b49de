package main

import (
	"os"

	"github.com/jesstingley17/luna-ai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
