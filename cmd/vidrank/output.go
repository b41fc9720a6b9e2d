package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// printCards writes out as indented JSON or as a table followed by the top comments.
func printCards(w io.Writer, out engine.VideoRecommendOutput, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, out.Summary)
	if len(out.Videos) == 0 {
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tRELEVANCE\tLIKES\tVIEWS\tPOSITIVE\tTRANSCRIPT\tTITLE")
	for _, c := range out.Videos {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%d\t%d\t%.0f%%\t%t\t%s\n",
			c.Rank, c.CompositeScore, c.RelevanceScore, c.Likes, c.Views, c.PositiveRatio*100, c.UsedTranscript, c.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, c := range out.Videos {
		fmt.Fprintf(w, "%d. %s\n", c.Rank, c.URL)
		if c.TopComment != "" {
			fmt.Fprintf(w, "   top comment: %s\n", c.TopComment)
		}
	}
	return nil
}
