package cmd

import (
	"github.com/datphan/lawgen/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lawgen",
	Short: "Vietnamese law Q/A dataset generator",
	Long: "Lawgen queries a locally running inference server (Ollama or any\n" +
		"OpenAI-compatible endpoint) with legal questions and writes the\n" +
		"question/answer pairs to a CSV file for fine-tuning.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the request log database (overrides LAWGEN_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to the settings file (default: $XDG_CONFIG_HOME/lawgen/lawgen.yaml)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LAWGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
