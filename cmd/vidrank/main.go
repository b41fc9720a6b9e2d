// Package main is the entry point for the vidrank CLI: search YouTube for a
// query and print the ranked videos, or rank a candidate list from a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/rankserver"
)

// version is set at build time via ldflags.
var version = "dev"

// deps is built once per invocation in PersistentPreRunE.
var deps *rankserver.Deps

var rootCmd = &cobra.Command{
	Use:   "vidrank",
	Short: "Rank YouTube videos for a query",
	Long: `vidrank searches YouTube for a query and ranks the hits by semantic relevance
of title, description and auto-generated transcript, blended with likes per
view and the share of positive comments.

Configuration is read from the environment and an optional .env file
(YOUTUBE_API_KEY, EMBED_API_BASE, CAPTION_BACKEND, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		engine.Init(engine.LoadConfig())
		deps = rankserver.NewDeps(*engine.Cfg, nil)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of vidrank",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vidrank %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "output results as JSON")
	rootCmd.PersistentFlags().String("lang", "", "caption language (default: CAPTION_LANG or en)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
