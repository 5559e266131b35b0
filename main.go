package main

import (
	"os"

	"github.com/abhisek/vizlearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
