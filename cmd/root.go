package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/careercoach/coach/internal/config"
	"github.com/careercoach/coach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "coach",
	Short:        "Technical interview practice in the terminal",
	Long:         "Coach generates multiple-choice technical interview quizzes, scores them, and keeps a history of past assessments.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Backend base URL (overrides COACH_API_URL env var)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides COACH_TOKEN env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite attempt journal (overrides COACH_DB env var)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(sandboxCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads env and .env, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := cmd.Flags().GetString("token"); v != "" {
		cfg.Token = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the journal path using --db / COACH_DB first, then
// the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
