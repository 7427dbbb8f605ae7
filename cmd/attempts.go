package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careercoach/coach/internal/store"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Print the local attempt journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		attempt, _ := cmd.Flags().GetString("attempt")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.Attempts().Query(cmd.Context(), store.QueryOpts{Limit: limit, AttemptID: attempt})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		printAttempts(cmd.OutOrStdout(), events)
		return nil
	},
}

func init() {
	attemptsCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	attemptsCmd.Flags().String("attempt", "", "Only show events of this attempt id")
}

func printAttempts(w io.Writer, events []store.AttemptEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-15s  %5s  %5s  %6s  %s\n",
		"SEQ", "TIMESTAMP", "ATTEMPT", "ACTION", "QS", "ANS", "SCORE", "MESSAGE")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, e := range events {
		id := e.AttemptID
		if len(id) > 8 {
			id = id[:8]
		}
		score := "-"
		if e.Action == store.ActionSubmitted {
			score = fmt.Sprintf("%.1f", e.Score)
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-15s  %5d  %5d  %6s  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			id,
			e.Action,
			e.QuestionCount,
			e.AnsweredCount,
			score,
			truncate(e.Message, 40),
		)
	}
}
