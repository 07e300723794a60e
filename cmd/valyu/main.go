package main

import (
	"os"

	"github.com/hyperengineering/valyu"
)

func main() {
	valyu.Version = version
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
