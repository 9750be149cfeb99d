package main

import (
	"github.com/DrMaserLie/temporium/cmd/temporium/cmd"
)

func main() {
	cmd.Execute()
}
