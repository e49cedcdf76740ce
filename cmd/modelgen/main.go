package main

import (
	"github.com/ramalama-labs/modelgen/pkg/cli"
)

func main() {
	cli.Execute()
}
