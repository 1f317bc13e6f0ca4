package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/surfjump/internal/games/surfjump"
	"github.com/vovakirdan/surfjump/internal/registry"
	"github.com/vovakirdan/surfjump/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs",
	Long: `Display the best runs for a variant (default: surfjump).

Examples:
  surfjump scores
  surfjump scores surfjump_strict --limit 20
  surfjump scores --recent
  surfjump scores surfjump --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs of every variant instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := surfjump.IDForgiving
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'surfjump list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs of %s.\n", info.Title)
		return
	}

	var runs []storage.Run
	if flagRecent {
		fmt.Println("Recent runs")
		runs, err = store.RecentRuns(flagScoresLimit)
	} else {
		fmt.Printf("Best runs - %s\n", info.Title)
		runs, err = store.TopRuns(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'surfjump play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-8s  %-16s  %s\n", "Rank", "Score", "Max Pwr", "Diff", "Time", "Date", "Variant")
	fmt.Printf("  %-4s  %-8s  %-7s  %-4s  %-8s  %-16s  %s\n", "----", "-----", "-------", "----", "----", "----", "-------")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-7d  %-4d  %-8s  %-16s  %s\n",
			i+1, r.Score, r.MaxLevel, r.Difficulty, runTime(r.Ticks), r.CreatedAt.Format("2006-01-02 15:04"), r.GameID)
	}

	if flagRecent {
		all, err := store.GetAllGamesStats()
		if err != nil {
			return
		}
		fmt.Println()
		for _, g := range registry.List() {
			if stats, ok := all[g.ID]; ok {
				fmt.Printf("%-16s  Best: %d  Best power: %d  Runs: %d\n",
					g.ID, stats.HighScore, stats.BestLevel, stats.GamesCount)
			}
		}
		return
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Best power: %d  Runs: %d  Average: %.0f\n",
			stats.HighScore, stats.BestLevel, stats.GamesCount, stats.AvgScore)
	}
}

// runTime converts a tick count to play time at the configured rate.
func runTime(ticks uint64) string {
	if ticks == 0 || flagFPS <= 0 {
		return "-"
	}
	d := time.Duration(ticks) * time.Second / time.Duration(flagFPS)
	return d.Round(time.Second).String()
}
