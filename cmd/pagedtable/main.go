// Command pagedtable browses paginated remote resources in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/pagedtable/internal/cli"
	"github.com/rshade/pagedtable/pkg/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
