// SPDX-License-Identifier: EPL-2.0

// Command msurev creates a reversed version of an MSU-1 PCM file.
//
// Information is lost: any intro before the loop point is not carried over,
// and the loop of the new file starts after the synthesized fade-in.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/msupcm"
	"github.com/ik5/msupcm/internal/cliutil"
	"github.com/ik5/msupcm/msu"
)

const (
	fadeTimeFlag   = "fade-time"
	leadInFlag     = "lead-in"
	trueStereoFlag = "true-stereo"
)

func newApp() *cli.App {
	return &cli.App{
		Name:      "msurev",
		Usage:     "create a reversed version of an MSU-1 .pcm file",
		ArgsUsage: "<infile.pcm> <outfile.pcm>",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    fadeTimeFlag,
				Aliases: []string{"f"},
				Value:   msupcm.DefaultFadeTime,
				Usage:   "seconds of fade in (does not apply to tracks with a zero loop point)",
				EnvVars: []string{"MSUREV_FADE_TIME"},
			},
			&cli.BoolFlag{
				Name:    leadInFlag,
				Usage:   "emit the fade ahead of a full loop pass, so the output loops exactly",
				EnvVars: []string{"MSUREV_LEAD_IN"},
			},
			&cli.BoolFlag{
				Name:    trueStereoFlag,
				Usage:   "fade the right channel from its own samples instead of the left ones",
				EnvVars: []string{"MSUREV_TRUE_STEREO"},
			},
			cliutil.VerboseFlag(),
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	// Parameters are checked before touching any file.
	fade, err := msupcm.FadeSamples(c.Float64(fadeTimeFlag))
	if err != nil {
		return err
	}

	args, err := cliutil.Args(c, 2)
	if err != nil {
		return err
	}

	logger, err := cliutil.Logger(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in, out := args[0], args[1]
	res, err := msupcm.ReverseFile(in, out, msupcm.Options{
		FadeSamples: fade,
		LeadIn:      c.Bool(leadInFlag),
		TrueStereo:  c.Bool(trueStereoFlag),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("wrote reversed track",
		zap.String("output", out),
		zap.Int("frames", res.Frames),
		zap.Int("dropped_intro_frames", res.DroppedFrames),
		zap.Uint32("loop_point", res.Header.LoopPoint),
		zap.Bool("faded", res.Faded),
		zap.Float64("seconds", msu.Duration(res.Frames)),
	)
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "msurev:", err)
		os.Exit(1)
	}
}
