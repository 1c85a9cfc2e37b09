package main

import (
	"os"

	"github.com/jmottin/subsched/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
