package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
	"github.com/anatolykoptev/go_vidrank/internal/toolutil"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate videos read from a JSON file",
	Long: `Rank reads a JSON array of videos ({"id","title","description","likes","views"})
from --file (or stdin with "-") and ranks them against --query without
calling the search API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		file, _ := cmd.Flags().GetString("file")
		lang, _ := cmd.Flags().GetString("lang")
		asJSON, _ := cmd.Flags().GetBool("json")
		if query == "" {
			return engine.ErrEmptyQuery
		}

		candidates, err := readCandidates(cmd.InOrStdin(), file)
		if err != nil {
			return err
		}

		ranked, err := deps.Ranker.RankLang(cmd.Context(), query, candidates, toolutil.NormLang(lang, engine.Cfg.CaptionLang))
		if errors.Is(err, engine.ErrNoUsableContent) {
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

func readCandidates(stdin io.Reader, file string) ([]engine.CandidateVideo, error) {
	r := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var candidates []engine.CandidateVideo
	if err := json.NewDecoder(r).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

func init() {
	rankCmd.Flags().String("query", "", "query to rank against")
	rankCmd.Flags().String("file", "-", `JSON file with candidate videos ("-" for stdin)`)
	rootCmd.AddCommand(rankCmd)
}
