package main

import (
	"github.com/bmadhq/toolcore/pkg/cli"
)

// version is injected at build time via -ldflags.
var version string

func main() {
	cli.Execute(version)
}
