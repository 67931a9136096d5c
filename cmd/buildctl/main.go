package main

import (
	"os"

	"github.com/bianoble/buildctl/cmd/buildctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
