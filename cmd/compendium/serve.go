package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/steel-compendium/internal/errors"
	"github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/rest"
	v1alpha1 "github.com/KirkDiggler/steel-compendium/internal/handlers/compendium/v1alpha1"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/compendium"
	"github.com/KirkDiggler/steel-compendium/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/clock"
	"github.com/KirkDiggler/steel-compendium/internal/pkg/idgen"
	"github.com/KirkDiggler/steel-compendium/internal/repositories/catalog"
)

const shutdownTimeout = 30 * time.Second

var seedDir string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over gRPC",
	Long: `Serve starts the catalog gRPC service over the configured store. With
--rules the directory is parsed and saved to the store before serving.
With --http-port a read-only JSON view is served next to gRPC.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 50051, "gRPC server port")
	serveCmd.Flags().IntVar(&httpPortFlag, "http-port", 0, "HTTP JSON port, 0 disables")
	serveCmd.Flags().StringVar(&storeFlag, "store", "", "catalog store (redis, sqlite)")
	serveCmd.Flags().StringVar(&seedDir, "rules", "", "rules directory to load before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	repo, release, err := openRepository()
	if err != nil {
		return err
	}
	defer release()
	if repo == nil {
		return errors.FailedPrecondition("serve needs a store: set COMPENDIUM_STORE or --store")
	}

	if seedDir != "" {
		if err := seed(ctx, repo); err != nil {
			return err
		}
	}

	roll, err := powerroll.New(&powerroll.Config{Roller: dice.DefaultRoller})
	if err != nil {
		return err
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Repository: repo,
		PowerRoll:  roll,
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger := interceptorLogger(slog.Default())
	recovery := grpc_recovery.WithRecoveryHandlerContext(recoverPanic)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recovery),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recovery),
		),
	)

	v1alpha1.RegisterCatalogServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort, "store", cfg.Store)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	httpSrv, err := startHTTP(repo, errChan)
	if err != nil {
		srv.Stop()
		return err
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gRPC server")
		healthServer.Shutdown()

		if httpSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("HTTP shutdown failed", "error", err)
			}
			cancel()
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(shutdownTimeout):
			slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("Server stopped gracefully")
		}
		return nil

	case err := <-errChan:
		return err
	}
}

// startHTTP serves the JSON view when an HTTP port is configured. A nil
// server means it is disabled.
func startHTTP(repo catalog.Repository, errChan chan<- error) (*http.Server, error) {
	if cfg.HTTPPort == 0 {
		return nil, nil
	}

	handler, err := rest.NewHandler(&rest.HandlerConfig{Repository: repo})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	return httpSrv, nil
}

// seed parses the rules directory into the store
func seed(ctx context.Context, repo catalog.Repository) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	svc, err := compendium.New(&compendium.Config{
		Parser:     p,
		Repository: repo,
		IDGen:      idgen.NewUUID("seed"),
		Clock:      clock.New(),
		Workers:    cfg.Workers,
	})
	if err != nil {
		return err
	}

	out, err := svc.ParseTree(ctx, &compendium.ParseTreeInput{
		FS:      os.DirFS(seedDir),
		Persist: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to seed catalog")
	}

	slog.Info("Catalog seeded",
		"rules", seedDir,
		"saved", out.Summary.Saved,
		"skipped", out.Summary.Skipped)
	return nil
}

// interceptorLogger adapts slog to the grpc middleware logger
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "panic in gRPC handler", "panic", p)
	return status.Error(codes.Internal, "internal error")
}
