// Package main provides the backprop CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes the CLI with the given arguments. Command output goes to outW,
// logs go to errW.
func run(outW, errW io.Writer, args []string) error {
	cmd := newRootCmd(outW, errW)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
