// Package cmd implements the xsnow command line.
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/xsnow"
	"github.com/phanxgames/xsnow/bells"
)

var (
	prefsPath string
	seed      uint64
	debug     bool
	interval  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "xsnow",
	Short: "Falling snow, drifting trees and the occasional sleigh",
	Long: `xsnow animates a winter scene: snow blown about by gusts of wind, a row
of fir trees and a sleigh that now and then crosses the sky.

Scene preferences live in a JSON file (see --prefs). Editing it while the
scene runs applies the change immediately.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "preferences file (default is the user config dir)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print tick timing to stderr")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", xsnow.DefaultInterval, "time between frames")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// openSource returns the preferences file named by --prefs, or the per-user
// default.
func openSource() (*xsnow.FileSource, error) {
	path := prefsPath
	if path == "" {
		var err error
		if path, err = xsnow.DefaultPrefsPath(); err != nil {
			return nil, err
		}
	}
	return xsnow.NewFileSource(path), nil
}

func newRNG() *xsnow.RNG {
	s := seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return xsnow.NewRNG(s)
}

func newScene(palette *xsnow.Palette) *xsnow.Scene {
	s := xsnow.NewScene(palette, newRNG())
	s.SetDebugMode(debug)
	return s
}

// watchPrefs reapplies the preferences whenever the file changes outside the
// program. Without a watch the scene keeps running on what it loaded.
func watchPrefs(ctx context.Context, src *xsnow.FileSource, eng *xsnow.Engine) {
	go func() {
		err := src.Watch(ctx, 200*time.Millisecond, func() {
			if err := eng.OnConfigChanged(); err != nil {
				log.Printf("xsnow: %v", err)
			}
		})
		if err != nil {
			log.Printf("xsnow: %v", err)
		}
	}()
}

// ringOnLaunch plays the jingle whenever a sleigh sets off. Without audio
// the scene runs silently.
func ringOnLaunch(eng *xsnow.Engine, volume float64) func() {
	p := bells.NewPlayer(volume)
	if err := p.Initialize(); err != nil {
		log.Printf("xsnow: audio unavailable: %v", err)
		return func() {}
	}
	eng.OnLaunch(p.Ring)
	return p.Close
}
