package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/mnemosyne/pkg/cli/config"
	httpctrl "github.com/secmon-lab/mnemosyne/pkg/controller/http"
	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/service/enrich"
	"github.com/secmon-lab/mnemosyne/pkg/service/hub"
	"github.com/secmon-lab/mnemosyne/pkg/usecase"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var storageCfg config.Storage

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MNEMOSYNE_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the capture ingestion server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Pick the enricher: Gemini when configured, otherwise the
			// deterministic local one
			var enricher interfaces.Enricher
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				var opts []enrich.Option
				if cfg.Prompt != "" {
					opts = append(opts, enrich.WithPrompt(cfg.Prompt))
				}
				enricher, err = enrich.New(llmClient, opts...)
				if err != nil {
					return goerr.Wrap(err, "failed to create enricher")
				}
				logging.Default().Info("Gemini enrichment enabled")
			} else {
				enricher = enrich.NewStatic()
				logging.Default().Warn("Gemini not configured, using static enrichment")
			}

			var ucOpts []usecase.Option
			if cfg.PipelineConcurrency > 0 {
				ucOpts = append(ucOpts, usecase.WithPipelineConcurrency(cfg.PipelineConcurrency))
			}
			uc := usecase.New(repo, enricher, hub.New(), ucOpts...)

			var httpOpts []httpctrl.Options
			mediaClient, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure media storage")
			}
			if mediaClient != nil {
				defer func() {
					if err := mediaClient.Close(); err != nil {
						logging.Default().Error("failed to close media client", "error", err.Error())
					}
				}()
				httpOpts = append(httpOpts, httpctrl.WithMediaStore(mediaClient))
				logging.Default().Info("Media uploads enabled", "bucket", storageCfg.Bucket())
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Close listeners first so no new captures arrive, then
				// let scheduled pipelines finish.
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				if err := uc.Drain(shutdownCtx); err != nil {
					logging.Default().Warn("shutdown with pipelines still in flight", "error", err.Error())
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
