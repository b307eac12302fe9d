package main

import (
	"github.com/erppro/identity/internal/cli"
)

func main() {
	cli.Execute()
}
