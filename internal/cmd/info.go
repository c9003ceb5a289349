// SPDX-License-Identifier: EPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/ik5/oggflac/demux"
	"github.com/ik5/oggflac/formats/ogg"
)

// InfoCommand lists the links of an Ogg FLAC file.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Traverse every link and print the link table",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "save-index", Usage: "Write the link table to `PATH` for later seeks"},
		},
		Action: infoAction,
	}
}

func infoAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
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

	codec, in, err := ogg.Probe(f)
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), exitFailure)
	}
	if codec != ogg.CodecFLAC {
		return cli.Exit(fmt.Sprintf("%s: %s stream, only FLAC links can be listed", path, codec), exitFailure)
	}

	d := demux.New(in, s.demuxOptions()...)
	defer d.Close()

	if err := drain(d); err != nil {
		return cli.Exit(fmt.Sprintf("%s: %v", path, err), exitFailure)
	}

	links := d.Links()
	if err := printLinks(c.App.Writer, d, links); err != nil {
		return err
	}

	indexPath := c.String("save-index")
	if indexPath == "" && s.cfg.IndexDir != "" {
		indexPath = filepath.Join(s.cfg.IndexDir, filepath.Base(path)+".links")
	}
	if indexPath == "" {
		return nil
	}

	data, err := links.MarshalBinary()
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	if err := os.WriteFile(indexPath, data, 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("save index: %v", err), exitFailure)
	}
	s.log.Info("link index saved")
	return nil
}

// drain reads d to the end, stepping over link boundaries.
func drain(d *demux.Demuxer) error {
	for {
		_, err := io.Copy(io.Discard, d)
		if errors.Is(err, demux.ErrEndOfLink) {
			d.NextLink()
			continue
		}
		return err
	}
}

func printLinks(w io.Writer, d *demux.Demuxer, links demux.LinkTable) error {
	if major, minor, ok := d.MappingVersion(); ok {
		fmt.Fprintf(w, "mapping version: %d.%d\n", major, minor)
	}
	fmt.Fprintf(w, "links: %d detected, %d indexed\n", d.LinksDetected(), len(links))
	fmt.Fprintf(w, "total samples: %d\n\n", links.TotalSamples())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LINK\tSERIAL\tSTART\tEND\tSAMPLES")
	for i, l := range links {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\n", i, l.SerialNumber, l.StartByte, l.EndByte, l.Samples)
	}
	return tw.Flush()
}
