package main

import (
	"fmt"
	"os"

	"github.com/siftlint/sift/cmd/sift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
