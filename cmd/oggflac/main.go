// SPDX-License-Identifier: EPL-2.0

// Package main provides the oggflac CLI entrypoint.
//
// Usage:
//
//	oggflac [global options] info [--save-index PATH] FILE
//	oggflac [global options] extract --link N --output PATH [--index PATH] FILE
//	oggflac [global options] decode --output PATH [--bits N] [--index PATH] FILE
//
// Exit codes:
//   - 0: success
//   - 1: the input could not be read or decoded
//   - 2: invalid arguments or configuration
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ik5/oggflac/internal/cmd"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	app := cmd.NewApp(version)
	app.ExitErrHandler = exitErrHandler

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// exitErrHandler preserves exit codes from cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
