package cmd

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/xsnow"
	"github.com/phanxgames/xsnow/termhost"
)

var (
	termLog   string
	termBells bool
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Show the scene in the terminal",
	Long: `Show the scene in the terminal.

Keys: w wind, s sleigh size, r red nose, Up/Down or +/- snow, t/g trees,
Left/Right pan, q or Esc quit.`,
	Args: cobra.NoArgs,
	RunE: runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)

	termCmd.Flags().StringVar(&termLog, "log", "", "write log messages to this file instead of dropping them")
	termCmd.Flags().BoolVar(&termBells, "bells", false, "ring bells when a sleigh sets off")
	termCmd.Flags().Float64Var(&bellVolume, "volume", 0.5, "bell volume, 0 to 1")
}

func runTerm(cmd *cobra.Command, args []string) error {
	palette, err := xsnow.LoadPalette(termhost.Glyphs{})
	if err != nil {
		return err
	}
	src, err := openSource()
	if err != nil {
		return err
	}

	// The screen owns the terminal; stray log lines would tear it.
	var out io.Writer = io.Discard
	if termLog != "" {
		f, err := os.OpenFile(termLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	log.SetOutput(out)
	defer log.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	t, err := termhost.NewTerminal(screen, newScene(palette), src, interval)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchPrefs(ctx, src, t.Engine())
	if termBells {
		defer ringOnLaunch(t.Engine(), bellVolume)()
	}
	return t.Run(ctx)
}
