package main

import (
	"os"

	"xprlink/cmd/xprlink/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
