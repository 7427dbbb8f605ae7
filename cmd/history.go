package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/careercoach/coach/internal/assessment"
	"github.com/careercoach/coach/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print past assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer closeLog()

		ctx := cmd.Context()
		stopTelemetry := setupTelemetry(ctx, cfg, logger)
		defer stopTelemetry()

		b := newBackend(cfg, logger)
		v, err := history.Load(ctx, b.history)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		return printHistory(cmd.OutOrStdout(), v, time.Now(), asJSON)
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "Print as JSON")
}

type historyEntryJSON struct {
	Label          string                  `json:"label"`
	ID             string                  `json:"id"`
	Score          float64                 `json:"score"`
	Date           string                  `json:"date,omitempty"`
	CreatedAt      string                  `json:"createdAt,omitempty"`
	ImprovementTip string                  `json:"improvementTip,omitempty"`
	Questions      []assessment.ReviewItem `json:"questions"`
}

type historyStatsJSON struct {
	Count          int     `json:"count"`
	Average        float64 `json:"average"`
	Best           float64 `json:"best"`
	Latest         float64 `json:"latest"`
	TotalQuestions int     `json:"totalQuestions"`
}

type historyJSON struct {
	Stats   historyStatsJSON   `json:"stats"`
	Entries []historyEntryJSON `json:"entries"`
}

// printHistory writes v as an aligned table followed by a stats line, or as
// one JSON document.
func printHistory(w io.Writer, v *history.View, now time.Time, asJSON bool) error {
	st := v.Stats()

	if asJSON {
		out := historyJSON{
			Stats: historyStatsJSON{
				Count:          st.Count,
				Average:        st.Average,
				Best:           st.Best,
				Latest:         st.Latest,
				TotalQuestions: st.TotalQuestions,
			},
			Entries: make([]historyEntryJSON, 0, v.Len()),
		}
		for _, e := range v.Entries() {
			questions := e.Review()
			if questions == nil {
				questions = []assessment.ReviewItem{}
			}
			out.Entries = append(out.Entries, historyEntryJSON{
				Label:          e.Label(),
				ID:             e.Record.ID(),
				Score:          e.Record.QuizScore,
				Date:           e.Date(),
				CreatedAt:      e.Record.CreatedAt,
				ImprovementTip: e.Tip(),
				Questions:      questions,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if v.Empty() {
		fmt.Fprintln(w, "No assessments yet.")
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-22s  %-14s  %7s  %7s  %s\n", "QUIZ", "DATE", "WHEN", "SCORE", "CORRECT", "TIP")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, e := range v.Entries() {
		correct := "-"
		if n := len(e.Review()); n > 0 {
			correct = fmt.Sprintf("%d/%d", e.CorrectCount(), n)
		}
		fmt.Fprintf(w, "%-8s  %-22s  %-14s  %7s  %7s  %s\n",
			e.Label(), orDash(e.Date()), orDash(e.Relative(now)), e.Percent(), correct, truncate(e.Tip(), 40))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d quizzes, average %.1f%%, best %.1f%%, latest %.1f%%, %d questions answered\n",
		st.Count, st.Average, st.Best, st.Latest, st.TotalQuestions)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
