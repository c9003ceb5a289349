// SPDX-License-Identifier: EPL-2.0

package cmd

import "github.com/urfave/cli/v2"

// NewApp assembles the command line application.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:    "oggflac",
		Usage:   "Inspect and decode Ogg FLAC files",
		Version: version,
		Flags:   GlobalFlags(),
		Commands: []*cli.Command{
			InfoCommand(),
			ExtractCommand(),
			DecodeCommand(),
		},
	}
}
