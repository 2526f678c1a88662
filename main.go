package main

import (
	"os"

	"github.com/CSU-ITMO-2025-2/team7/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
