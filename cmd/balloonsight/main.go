// Package main is the entry point for the balloonsight analyzer CLI.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
