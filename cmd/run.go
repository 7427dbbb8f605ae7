package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careercoach/coach/internal/app"
	"github.com/careercoach/coach/internal/quiz"
	"github.com/careercoach/coach/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Open the interview quiz directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, quizOnly bool) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	stopTelemetry := setupTelemetry(ctx, cfg, logger)
	defer stopTelemetry()

	b := newBackend(cfg, logger)
	sessionOpts := []quiz.SessionOption{quiz.WithLogger(logger)}

	// The journal is optional: the quiz works without local history.
	if dbPath, err := resolveDBPath(cfg); err != nil {
		logger.Warn("attempt journal disabled", "err", err)
	} else if st, err := store.Open(dbPath); err != nil {
		logger.Warn("attempt journal disabled", "path", dbPath, "err", err)
	} else {
		defer st.Close()
		sessionOpts = append(sessionOpts, quiz.WithJournal(st.Attempts()))
	}

	logger.Info("starting", "version", version, "api", cfg.APIURL, "quiz_only", quizOnly)
	if err := app.Run(app.Options{
		Session:  quiz.NewSession(sessionOpts...),
		Executor: quiz.NewExecutor(b.repo),
		History:  b.history,
		Identity: b.identity(ctx),
		QuizOnly: quizOnly,
	}); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
