package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/advisor"
	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/config"
	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/web"
)

var (
	serveAddr string
	seedPath  string
	noDemo    bool
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the productivity platform API.

Examples:
  taskd serve
  taskd serve --addr :8000 --seed tasks.yaml
  OPENAI_API_KEY=sk-... taskd serve`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML file of tasks to load on startup")
	cmd.Flags().BoolVar(&noDemo, "no-demo", false, "skip the built-in demo tasks")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if noDemo {
		cfg.SeedDemo = false
	}

	store := core.NewStore()
	if err := seedStore(store, cfg, logger); err != nil {
		return err
	}

	rules := advisor.NewRuleEngine(cfg.ThinkDelay)
	var adv advisor.Advisor = rules
	if cfg.UseRemoteAdvisor() {
		adv = advisor.NewOpenAIAdvisor(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, rules, logger)
		logger.Info("advisor", slog.String("engine", "openai"), slog.String("model", cfg.OpenAIModel))
	} else {
		logger.Info("advisor", slog.String("engine", "rules"))
	}

	server := web.NewServer(store, adv, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

func seedStore(store *core.Store, cfg *config.Config, logger *slog.Logger) error {
	var drafts []core.Draft
	if cfg.SeedDemo {
		drafts = core.DemoDrafts(time.Now())
	}
	if seedPath != "" {
		fromFile, err := core.LoadSeedFile(seedPath)
		if err != nil {
			return err
		}
		drafts = append(drafts, fromFile...)
	}

	for _, d := range drafts {
		if _, err := store.Create(d); err != nil {
			return fmt.Errorf("seed task %q: %w", d.Title, err)
		}
	}
	if len(drafts) > 0 {
		logger.Info("seeded tasks", slog.Int("count", len(drafts)))
	}
	return nil
}
