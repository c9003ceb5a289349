// SPDX-License-Identifier: EPL-2.0

// Package cmd implements the subcommands of the oggflac command line tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/oggflac/demux"
	"github.com/ik5/oggflac/internal/config"
	"github.com/ik5/oggflac/internal/logging"
)

// GlobalFlags are accepted before any subcommand and override the config
// file.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"OGGFLAC_CONFIG"}},
		&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn or error"},
		&cli.IntFlag{Name: "chunk-size", Usage: "Minimum bytes per transport read"},
		&cli.BoolFlag{Name: "no-chain", Usage: "Stop after the first link"},
	}
}

type settings struct {
	cfg *config.Config
	log *zap.Logger
}

// loadSettings merges the config file with the global flags.
func loadSettings(c *cli.Context) (*settings, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, cli.Exit(err.Error(), exitUsage)
		}
		cfg = loaded
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("no-chain") {
		cfg.NoChain = c.Bool("no-chain")
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	errw := c.App.ErrWriter
	if errw == nil {
		errw = os.Stderr
	}
	log, err := logging.New(cfg.LogLevel, errw)
	if err != nil {
		return nil, cli.Exit(err.Error(), exitUsage)
	}

	return &settings{cfg: cfg, log: log}, nil
}

func (s *settings) demuxOptions() []demux.Option {
	return []demux.Option{
		demux.WithChainedStream(!s.cfg.NoChain),
		demux.WithChunkSize(s.cfg.ChunkSize),
		demux.WithLogger(s.log),
	}
}

// loadIndex reads a link table saved by the info command.
func loadIndex(path string) (demux.LinkTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var links demux.LinkTable
	if err := links.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return links, nil
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("exactly one FILE argument required", exitUsage)
	}
	return c.Args().First(), nil
}
