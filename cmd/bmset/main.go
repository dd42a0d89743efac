package main

import (
	"os"

	"github.com/hupe1980/bmset/cmd/bmset/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
