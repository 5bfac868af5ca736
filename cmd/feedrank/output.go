package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rushteam/feedrank/core"
	"github.com/rushteam/feedrank/feed"
)

const rule = "============================================================"

func printFeed(w io.Writer, results []feed.Result, rctx *core.RecommendContext) {
	fmt.Fprintf(w, "\n%s\nFINAL RANKED FEED\n%s\n", rule, rule)
	for i, res := range results {
		network := "OUT"
		if rctx.Follows(res.Post.AuthorID) {
			network = "IN"
		}
		video := ""
		if res.Post.HasVideo {
			video = " [VIDEO]"
		}
		fmt.Fprintf(w, "\n#%d (score: %.4f) [%s]%s\n", i+1, res.Score, network, video)
		fmt.Fprintf(w, "   @%s: %s\n", res.Post.AuthorID, truncate(res.Post.Text, 45))
	}
	if len(results) == 0 {
		fmt.Fprintln(w, "\n(no posts)")
	}
}

func printExplanation(w io.Writer, e feed.Explanation) {
	fmt.Fprintf(w, "\n%s\nDETAILED BREAKDOWN: Top Ranked Post\n%s\n", rule, rule)
	fmt.Fprintf(w, "Post %s by @%s\n", e.PostID, e.AuthorID)
	fmt.Fprintln(w, "\nAction contributions (weight x probability):")
	for _, c := range e.Contributions {
		fmt.Fprintf(w, "  %-15s %+7.2f x %.4f = %+.4f\n", c.Action, c.Weight, c.Probability, c.Contribution)
	}
	fmt.Fprintf(w, "\n  Base Score:  %.4f\n", e.Base)
	if e.VideoBonus > 0 {
		fmt.Fprintf(w, "  Video Bonus: +%.4f\n", e.VideoBonus)
	}
	if e.AuthorRank > 0 {
		fmt.Fprintf(w, "  Diversity:   x%.4f (author post #%d)\n", e.Multiplier, e.AuthorRank+1)
	}
	fmt.Fprintf(w, "  Final Score: %.4f\n", e.Final)
}

func printAuthorDiversity(w io.Writer, r *feed.Ranker, results []feed.Result) {
	header := false
	for _, author := range feed.Authors(results) {
		entries := r.AuthorSummary(results, author)
		if len(entries) < 2 {
			continue
		}
		if !header {
			fmt.Fprintf(w, "\n%s\nAUTHOR DIVERSITY EFFECT\n%s\n", rule, rule)
			header = true
		}
		fmt.Fprintf(w, "\n@%s has %d posts in results:\n", author, len(entries))
		for i, e := range entries {
			fmt.Fprintf(w, "  Post %d: #%d score=%.4f (decay factor: %.2f)\n", i+1, e.Position+1, e.Score, e.Multiplier)
		}
	}
	if header {
		fmt.Fprintln(w, "\nDiversity decay ensures no single author dominates the feed.")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
