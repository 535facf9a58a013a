package main

import (
	"fmt"
	"os"
)

// Version information, injected at build time.
var (
	Version = "dev"
	Commit  = "none"
)

func main() {
	root := NewRootCmd()
	root.Version = Version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
