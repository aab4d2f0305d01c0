package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"llmrouter/internal/config"
	"llmrouter/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func addServeFlags(fs *pflag.FlagSet) {
	fs.String("addr", envStr("LLMROUTER_ADDR", ""), "HTTP listen address, e.g. :8080 (defaults LLMROUTER_ADDR or "+config.DefaultAddr+")")
	fs.Int("request-timeout", 0, "Seconds a chat dispatch may take, fallback included (0=no limit)")
	fs.Int64("max-body-bytes", 0, "Maximum JSON request body size in bytes")
	fs.Int("history-limit", 0, "Number of exchanges kept in history (-1 keeps all)")
	fs.Bool("cors", false, "Enable CORS")
	fs.StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated)")
}

// applyServeOverrides copies serve flags onto cfg. Flags that are not defined on the
// running command, or were left unset, keep the config file values.
func applyServeOverrides(fs *pflag.FlagSet, cfg *config.Config) {
	if f := fs.Lookup("addr"); f != nil && f.Value.String() != "" {
		cfg.Addr = f.Value.String()
	}
	if fs.Changed("request-timeout") {
		cfg.RequestTimeoutSeconds, _ = fs.GetInt("request-timeout")
	}
	if fs.Changed("max-body-bytes") {
		cfg.MaxBodyBytes, _ = fs.GetInt64("max-body-bytes")
	}
	if fs.Changed("history-limit") {
		cfg.HistoryLimit, _ = fs.GetInt("history-limit")
	}
	if fs.Changed("cors") {
		cfg.CORSEnabled, _ = fs.GetBool("cors")
	}
	if fs.Changed("cors-origins") {
		cfg.CORSOrigins, _ = fs.GetStringSlice("cors-origins")
	}
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	addServeFlags(cmd.Flags())
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	mgr, err := a.openManager()
	if err != nil {
		return err
	}
	defer mgr.Close()
	if err := mgr.SeedServiceConfig(ctx); err != nil {
		return err
	}

	httpapi.SetLogger(a.log)
	httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	httpapi.SetChatTimeoutSeconds(int64(a.cfg.RequestTimeoutSeconds))
	httpapi.SetCORSOptions(a.cfg.CORSEnabled, a.cfg.CORSOrigins, nil, nil)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", a.cfg.Addr).Str("db", a.cfg.DBPath).Msg("llmrouter listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	a.log.Info().Msg("shutting down")
	cancelBase()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		a.log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
