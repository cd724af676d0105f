package main

import (
	"fmt"
	"os"

	"github.com/es5lang/es5/cmd/es5/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
