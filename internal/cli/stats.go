package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/playtally/internal/dashboard"
	"github.com/sadopc/playtally/internal/stats"
	"github.com/sadopc/playtally/internal/store"
)

var (
	colorBold  = color.New(color.Bold)
	colorGold  = color.New(color.FgYellow, color.Bold)
	colorMuted = color.New(color.FgHiBlack)
)

func newStatsCmd(o *options) *cobra.Command {
	var participant string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print game counts and leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.open()
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.state(cmd.Context(), participant)
			if err != nil {
				return err
			}
			latest, err := s.store.LatestImport()
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), st, latest)
			return nil
		},
	}
	cmd.Flags().StringVarP(&participant, "participant", "p", "", "participant filter (default is the saved filter)")
	return cmd
}

// printStats writes the summary, then the rankings. latest may be nil.
func printStats(w io.Writer, st dashboard.State, latest *store.Import) {
	if msg := st.Placeholder(); msg != "" {
		colorMuted.Fprintln(w, msg)
		return
	}
	colorBold.Fprintf(w, "%s: %d games, %s to %s\n", st.Participant, st.Total(), st.First.Format(), st.Last.Format())
	if latest != nil {
		colorMuted.Fprintln(w, latest.Summary())
	}
	fmt.Fprintln(w)
	printRanking(w, "Games", st.Categories)
	printRanking(w, "Games played", st.ByEntries)
	printRanking(w, "Days played", st.ByDays)
}

// printRanking highlights the leader of an already sorted ranking.
func printRanking(w io.Writer, title string, ranking []stats.Count) {
	colorBold.Fprintln(w, title)
	for i, c := range ranking {
		name := fmt.Sprintf("%-20s", c.Key)
		if i == 0 {
			name = colorGold.Sprint(name)
		}
		fmt.Fprintf(w, "  %2d. %s %d\n", i+1, name, c.Value)
	}
	fmt.Fprintln(w)
}
