// Command toy is the Toy language interpreter driver.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-toy/cmd/toy/cmd"
)

func main() {
	err := cmd.Execute()
	if code := cmd.ExitCodeOf(err); code != 0 {
		if code == 1 && err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(code)
	}
}
