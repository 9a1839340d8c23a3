package main

import (
	"os"

	"github.com/smartcity/trafficflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
