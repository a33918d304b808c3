package main

import (
	"os"

	"github.com/algebrix/algebrix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
