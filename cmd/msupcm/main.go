// SPDX-License-Identifier: EPL-2.0

// Command msupcm converts audio to and from the MSU-1 PCM format and
// prints information about MSU-1 files.
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/msupcm"
	"github.com/ik5/msupcm/internal/cliutil"
	"github.com/ik5/msupcm/msu"
)

const loopFlag = "loop"

func newApp() *cli.App {
	reg := msupcm.NewRegistry()

	return &cli.App{
		Name:  "msupcm",
		Usage: "convert audio to and from MSU-1 .pcm files",
		Flags: []cli.Flag{cliutil.VerboseFlag()},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "convert a " + strings.Join(reg.Formats(), "/") + " file to MSU-1 PCM",
				ArgsUsage: "<infile> <outfile.pcm>",
				Flags: []cli.Flag{
					&cli.UintFlag{
						Name:    loopFlag,
						Aliases: []string{"l"},
						Usage:   "loop point in frames (0 = play once)",
						EnvVars: []string{"MSUPCM_LOOP"},
					},
				},
				Action: func(c *cli.Context) error {
					args, err := cliutil.Args(c, 2)
					if err != nil {
						return err
					}

					logger, err := cliutil.Logger(c)
					if err != nil {
						return err
					}
					defer func() { _ = logger.Sync() }()

					loop := c.Uint(loopFlag)
					if uint64(loop) > math.MaxUint32 {
						return fmt.Errorf("%w: %d does not fit the header", msu.ErrLoopOutOfRange, loop)
					}

					t, err := msupcm.ImportFile(reg, args[0], args[1], uint32(loop))
					if err != nil {
						return err
					}

					logger.Info("imported track",
						zap.String("output", args[1]),
						zap.Int("frames", t.Frames()),
						zap.Uint32("loop_point", t.LoopPoint),
					)
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "write an MSU-1 PCM file as WAV for previewing",
				ArgsUsage: "<infile.pcm> <outfile.wav>",
				Action: func(c *cli.Context) error {
					args, err := cliutil.Args(c, 2)
					if err != nil {
						return err
					}

					logger, err := cliutil.Logger(c)
					if err != nil {
						return err
					}
					defer func() { _ = logger.Sync() }()

					t, err := msupcm.ExportFile(args[0], args[1])
					if err != nil {
						return err
					}

					logger.Info("exported track",
						zap.String("output", args[1]),
						zap.Int("frames", t.Frames()),
					)
					return nil
				},
			},
			{
				Name:      "info",
				Usage:     "print the loop point and length of an MSU-1 PCM file",
				ArgsUsage: "<infile.pcm>",
				Action: func(c *cli.Context) error {
					args, err := cliutil.Args(c, 1)
					if err != nil {
						return err
					}

					t, err := msupcm.ReadTrack(args[0])
					if err != nil {
						return err
					}

					printInfo(c, t)
					return nil
				},
			},
		},
	}
}

func printInfo(c *cli.Context, t *msu.Track) {
	w := c.App.Writer
	fmt.Fprintf(w, "frames:     %d (%.3fs)\n", t.Frames(), msu.Duration(t.Frames()))
	if !t.HasLoop() {
		fmt.Fprintln(w, "loop point: none")
		return
	}
	fmt.Fprintf(w, "loop point: %d (%.3fs)\n", t.LoopPoint, msu.Duration(int(t.LoopPoint)))
	fmt.Fprintf(w, "loop:       %d frames (%.3fs)\n",
		t.Frames()-int(t.LoopPoint), msu.Duration(t.Frames()-int(t.LoopPoint)))
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "msupcm:", err)
		os.Exit(1)
	}
}
