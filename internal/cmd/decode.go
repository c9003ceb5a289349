// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/oggflac"
	"github.com/ik5/oggflac/formats/ogg"
	formatflac "github.com/ik5/oggflac/formats/oggflac"
)

// DecodeCommand converts Ogg FLAC or Ogg Vorbis input to WAV.
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode to a PCM WAV file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output `PATH`", Required: true},
			&cli.IntFlag{Name: "bits", Usage: "WAV bit depth: 8, 16, 24 or 32 (default from config)"},
			&cli.StringFlag{Name: "index", Usage: "Link table saved by info"},
		},
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	conv := oggflac.Converter{
		BitDepth: s.cfg.BitDepth,
		Decoder: ogg.Decoder{
			FLAC: formatflac.Decoder{
				DisableChaining: s.cfg.NoChain,
				ChunkSize:       s.cfg.ChunkSize,
				Logger:          s.log,
			},
		},
	}
	if c.IsSet("bits") {
		conv.BitDepth = c.Int("bits")
	}
	if indexPath := c.String("index"); indexPath != "" {
		links, err := loadIndex(indexPath)
		if err != nil {
			return cli.Exit(err.Error(), exitFailure)
		}
		conv.Decoder.FLAC.Links = links
	}

	in, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer in.Close()

	out, err := os.Create(c.String("output"))
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer out.Close()

	summary, err := conv.Convert(out, in)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), exitFailure)
	}

	s.log.Info("decoded",
		zap.Stringer("codec", summary.Codec),
		zap.Int("frames", summary.Frames),
	)
	fmt.Fprintf(c.App.Writer, "%s: %s, %d Hz, %d channel(s), %d frames\n",
		c.String("output"), summary.Codec, summary.SampleRate, summary.Channels, summary.Frames)
	return out.Close()
}
