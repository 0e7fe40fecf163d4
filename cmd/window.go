package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/spf13/cobra"

	"github.com/phanxgames/xsnow"
	"github.com/phanxgames/xsnow/ebitenhost"
)

var (
	assetDir       string
	atlasPath      string
	atlasPages     []string
	windowWidth    int
	windowHeight   int
	showFPS        bool
	pauseUnfocused bool
	windowBells    bool
	bellVolume     float64
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the scene in a window",
	Long: `Show the scene in a resizable window.

Keys: W wind, S sleigh size, R red nose, Up/Down snow, T/G trees,
Left/Right pan, F frame rate, P screenshot, Esc quit.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)

	windowCmd.Flags().StringVar(&assetDir, "assets", "", "directory of PNG/GIF assets (default draws them)")
	windowCmd.Flags().StringVar(&atlasPath, "atlas", "", "TexturePacker JSON atlas of the assets")
	windowCmd.Flags().StringSliceVar(&atlasPages, "atlas-page", nil, "atlas page image, in page order (repeatable)")
	windowCmd.Flags().IntVar(&windowWidth, "width", 800, "window width")
	windowCmd.Flags().IntVar(&windowHeight, "height", 600, "window height")
	windowCmd.Flags().BoolVar(&showFPS, "fps", false, "start with the frame rate overlay")
	windowCmd.Flags().BoolVar(&pauseUnfocused, "pause-unfocused", true, "stop the scene while the window is unfocused")
	windowCmd.Flags().BoolVar(&windowBells, "bells", true, "ring bells when a sleigh sets off")
	windowCmd.Flags().Float64Var(&bellVolume, "volume", 0.5, "bell volume, 0 to 1")
	windowCmd.MarkFlagsMutuallyExclusive("assets", "atlas")
}

func windowLoader() (xsnow.AssetLoader, error) {
	switch {
	case atlasPath != "":
		data, err := os.ReadFile(atlasPath)
		if err != nil {
			return nil, err
		}
		pages := make([]*ebiten.Image, 0, len(atlasPages))
		for _, p := range atlasPages {
			img, _, err := ebitenutil.NewImageFromFile(p)
			if err != nil {
				return nil, fmt.Errorf("atlas page: %w", err)
			}
			pages = append(pages, img)
		}
		return ebitenhost.LoadAtlas(data, pages)
	case assetDir != "":
		return ebitenhost.DirLoader{FS: os.DirFS(assetDir)}, nil
	}
	return ebitenhost.Procedural{}, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	loader, err := windowLoader()
	if err != nil {
		return err
	}
	palette, err := xsnow.LoadPalette(loader)
	if err != nil {
		return err
	}
	src, err := openSource()
	if err != nil {
		return err
	}

	g := ebitenhost.NewGame(newScene(palette), src, ebitenhost.Options{
		Width:          windowWidth,
		Height:         windowHeight,
		Interval:       interval,
		PauseUnfocused: pauseUnfocused,
		ShowFPS:        showFPS,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchPrefs(ctx, src, g.Engine())
	if windowBells {
		defer ringOnLaunch(g.Engine(), bellVolume)()
	}
	return ebitenhost.Run(g)
}
