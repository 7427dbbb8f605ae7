package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/careercoach/coach/internal/sandbox"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local practice backend",
	Long: "Serves the interview endpoints from memory for offline practice and demos. " +
		"Prints a bearer token to use with COACH_TOKEN or --token.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		raw, _ := cmd.Flags().GetBool("raw")
		secret, _ := cmd.Flags().GetString("secret")
		size, _ := cmd.Flags().GetInt("size")
		sub, _ := cmd.Flags().GetString("user")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if secret == "" {
			secret = cfg.SandboxSecret
		}
		logger, closeLog, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer closeLog()

		srv := sandbox.New(
			sandbox.WithSecret(secret),
			sandbox.WithRaw(raw),
			sandbox.WithQuizSize(size),
			sandbox.WithLogger(logger),
		)
		token, err := srv.MintToken(sub, ttl)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sandbox listening on http://%s\n", addr)
		fmt.Fprintf(out, "Token for %q (valid %s):\n\n%s\n\n", sub, ttl, token)
		fmt.Fprintf(out, "Try: COACH_API_URL=http://%s COACH_TOKEN=<token> coach\n", addr)

		httpSrv := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("sandbox server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down sandbox")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	sandboxCmd.Flags().String("addr", "127.0.0.1:8787", "Listen address")
	sandboxCmd.Flags().Bool("raw", false, "Serve plain JSON bodies instead of the proxy envelope")
	sandboxCmd.Flags().String("secret", "", "Token signing secret (default COACH_SANDBOX_SECRET)")
	sandboxCmd.Flags().Int("size", sandbox.DefaultQuizSize, "Questions per quiz")
	sandboxCmd.Flags().String("user", "dev-user", "Subject of the printed token")
	sandboxCmd.Flags().Duration("ttl", 24*time.Hour, "Lifetime of the printed token")
}
