package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
	"github.com/anatolykoptev/go_vidrank/internal/toolutil"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search YouTube and print the ranked top videos",
	Long: `Search runs a YouTube Data API search for the query, fetches statistics,
comments and transcripts for every hit and prints the top videos ordered by
composite score.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Cfg.Validate(); err != nil {
			return err
		}
		query := strings.Join(args, " ")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		lang, _ := cmd.Flags().GetString("lang")
		asJSON, _ := cmd.Flags().GetBool("json")

		ranked, err := deps.Recommender.RecommendWith(cmd.Context(), query,
			toolutil.ClampLimit(maxResults, engine.Cfg.SearchResults, 50),
			toolutil.NormLang(lang, engine.Cfg.CaptionLang))
		if errors.Is(err, engine.ErrQuotaExceeded) {
			return fmt.Errorf("YouTube API quota exceeded, update YOUTUBE_API_KEY or try again later: %w", err)
		}
		if engine.EmptyReason(err) != "" {
			return printCards(cmd.OutOrStdout(), toolutil.EmptyOutput(query, err), asJSON)
		}
		if err != nil {
			return err
		}

		cards := videos.ToCards(ranked)
		return printCards(cmd.OutOrStdout(), engine.VideoRecommendOutput{
			Query:   query,
			Videos:  cards,
			Summary: toolutil.Summary(query, cards),
		}, asJSON)
	},
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "candidates to fetch from YouTube search (default: SEARCH_RESULTS)")
	rootCmd.AddCommand(searchCmd)
}
