package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/xsnow"
)

var replayPretty bool

var replayCmd = &cobra.Command{
	Use:   "replay <script.json|->",
	Short: "Run a scripted scene headlessly and print a summary",
	Long: `Run a JSON replay script against a headless scene and print the
resulting summary as JSON. Two runs of the same script print the same
summary. --seed overrides the script's seed.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&replayPretty, "pretty", false, "indent the summary")
}

func readScript(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func runReplay(cmd *cobra.Command, args []string) error {
	data, err := readScript(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	sc, err := xsnow.LoadScript(data)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}

	s := sc.NewScene()
	s.SetDebugMode(debug)
	sum, err := sc.Run(s)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if replayPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(sum)
}
