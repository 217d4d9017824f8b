// SPDX-License-Identifier: MIT

// Command algoviz serves the animated data-structure visualizer and prints
// the same algorithms in the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algoviz/cmd/algoviz/commands"
)

func main() {
	if err := commands.NewRoot().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		for _, h := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", h)
		}
		os.Exit(1)
	}
}
