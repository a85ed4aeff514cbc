package main

import (
	"fmt"
	"os"

	"github.com/dyguan372/rippled/cmd/rippled/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
