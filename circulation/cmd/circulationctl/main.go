// Command circulationctl runs circulation commands and queries against an event store,
// serves the HTTP API and generates load.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	a := newApp(os.Stdout)
	err := newRootCmd(a).Execute()
	a.close()

	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
