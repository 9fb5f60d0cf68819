package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeJamon/tokendex/internal/di"
	"github.com/LeJamon/tokendex/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	// Server flags
	port     int
	bindAddr string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tokendex node",
	Long: `Start the tokendex node which provides:
- HTTP JSON-RPC API on /
- WebSocket stream of committed events on /ws
- Health check endpoint on /health`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&bindAddr, "bind", "", "address to bind to (overrides server.bind)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if bindAddr != "" {
		cfg.Server.Bind = bindAddr
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logging.RedirectStdLog(logger)

	container := di.New()
	defer func() {
		if err := container.Close(); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	provider := di.NewProvider(container, cfg, logger, rootCmd.Version)
	if err := provider.RegisterAll(); err != nil {
		return err
	}
	rpcServer, err := provider.RPCServer()
	if err != nil {
		return err
	}
	journal, err := provider.Journal()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           rpcServer.Handler(),
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", httpServer.Addr).
			Uint64("fee_percent", cfg.FeePercent).
			Msg("tokendexd listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if journal != nil {
		g.Go(func() error {
			return journal.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
