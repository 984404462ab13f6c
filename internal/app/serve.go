package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/api"
	"github.com/meridian-systems/accountpulse/internal/cache"
	"github.com/meridian-systems/accountpulse/internal/store"
)

var (
	serveFlagAddr    string
	serveFlagNoCache bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the engines over HTTP",
	Long: `Serve starts the HTTP API: stateless scoring endpoints under
/api/score, trend and alert analysis, portfolio summaries, and CRUD
plus cached evaluations for stored customers. Redis caching is used
when reachable and skipped otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveFlagNoCache, "no-cache", false, "Disable the Redis evaluation cache")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	handlers := &api.Handlers{
		Evaluator:   newEvaluator(cfg),
		DB:          db,
		Concurrency: cfg.Portfolio.Concurrency,
		Version:     appVersion,
	}

	if !serveFlagNoCache {
		c := cache.New(cfg.Cache.RedisAddr, cfg.Cache.ScoreTTL, cfg.Cache.AlertSummaryTTL)
		pingCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		err := c.Ping(pingCtx)
		cancel()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "redis unavailable at %s, caching disabled: %v\n", cfg.Cache.RedisAddr, err)
			_ = c.Close()
		} else {
			handlers.Cache = c
			defer c.Close()
		}
	}

	addr := serveFlagAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Routes(handlers, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("accountpulse %s listening on %s\n", appVersion, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
