// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/oggflac/demux"
)

// ExtractCommand writes the native FLAC stream of one link.
func ExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Write the native FLAC bytes of one link",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "link", Usage: "Zero based link `N`"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output `PATH`", Required: true},
			&cli.StringFlag{Name: "index", Usage: "Link table saved by info, used to jump straight to the link"},
		},
		Action: extractAction,
	}
}

func extractAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	link := c.Int("link")
	if link < 0 {
		return cli.Exit("--link must not be negative", exitUsage)
	}
	s, err := loadSettings(c)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	f, err := os.Open(path)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer f.Close()

	out, err := os.Create(c.String("output"))
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer out.Close()

	var n int64
	if indexPath := c.String("index"); indexPath != "" {
		n, err = extractIndexed(f, out, link, indexPath, s)
	} else {
		n, err = extractScan(f, out, link, s)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), exitFailure)
	}

	s.log.Info("link extracted", zap.Int("link", link), zap.Int64("bytes", n))
	fmt.Fprintf(c.App.Writer, "link %d: %d bytes written to %s\n", link, n, c.String("output"))
	return out.Close()
}

// extractScan walks the links in order until it reaches link.
func extractScan(in io.Reader, out io.Writer, link int, s *settings) (int64, error) {
	d := demux.New(in,
		demux.WithChainedStream(true),
		demux.WithChunkSize(s.cfg.ChunkSize),
		demux.WithLogger(s.log),
	)
	defer d.Close()

	var written int64
	for {
		dst := io.Discard
		if d.CurrentLink() == link {
			dst = out
		}

		n, err := io.Copy(dst, d)
		if dst == out {
			written += n
		}

		switch {
		case errors.Is(err, demux.ErrEndOfLink):
			if d.CurrentLink() == link {
				return written, nil
			}
			d.NextLink()
		case err != nil:
			return written, err
		case d.CurrentLink() < link:
			return 0, fmt.Errorf("link %d not found, stream has %d", link, d.LinksDetected())
		default:
			return written, nil
		}
	}
}

// extractIndexed reads only the byte range the saved index records for
// link.
func extractIndexed(f *os.File, out io.Writer, link int, indexPath string, s *settings) (int64, error) {
	links, err := loadIndex(indexPath)
	if err != nil {
		return 0, err
	}
	if link >= len(links) {
		return 0, fmt.Errorf("link %d not in index, it holds %d", link, len(links))
	}

	l := links[link]
	section := io.NewSectionReader(f, l.StartByte, l.EndByte-l.StartByte)
	d := demux.New(section,
		demux.WithSerialNumber(l.SerialNumber),
		demux.WithChunkSize(s.cfg.ChunkSize),
		demux.WithLogger(s.log),
	)
	defer d.Close()

	return io.Copy(out, d)
}
