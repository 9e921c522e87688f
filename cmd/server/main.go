package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"seabattle/internal/archive"
	memoryarchive "seabattle/internal/archive/memory"
	redisarchive "seabattle/internal/archive/redis"
	"seabattle/internal/dependencies/clock"
	"seabattle/internal/dependencies/random"
	"seabattle/internal/registry"
	"seabattle/internal/server"
	"seabattle/internal/transport"
)

// Archive type constants
const (
	archiveTypeMemory = "memory"
	archiveTypeRedis  = "redis"
)

type config struct {
	tcpAddr     string
	httpAddr    string
	workers     int
	archiveType string
	redisURL    string
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config{}

	cmd := &cobra.Command{
		Use:   "seabattle-server",
		Short: "Sea-battle game arbitration server",
		Long: `seabattle-server arbitrates two-player sea-battle games over a synchronous
request/response protocol. Clients reach it over newline-framed TCP or over
HTTP POST; notifications are delivered piggy-backed on the recipient's own
next request.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.tcpAddr, "tcp-addr",
		getEnvOrDefault("SEABATTLE_TCP_ADDR", ":5555"), "TCP listen address (env: SEABATTLE_TCP_ADDR)")
	cmd.Flags().StringVar(&cfg.httpAddr, "http-addr",
		getEnvOrDefault("SEABATTLE_HTTP_ADDR", ":8080"), "HTTP listen address (env: SEABATTLE_HTTP_ADDR)")
	cmd.Flags().IntVar(&cfg.workers, "workers",
		getEnvIntOrDefault("SEABATTLE_WORKERS", server.DefaultWorkers), "dispatch worker count (env: SEABATTLE_WORKERS)")
	cmd.Flags().StringVar(&cfg.archiveType, "archive",
		getEnvOrDefault("SEABATTLE_ARCHIVE", archiveTypeMemory), "result archive backend: memory, redis (env: SEABATTLE_ARCHIVE)")
	cmd.Flags().StringVar(&cfg.redisURL, "redis-url",
		os.Getenv("SEABATTLE_REDIS_URL"), "Redis URL for the redis archive (env: SEABATTLE_REDIS_URL)")
	cmd.Flags().StringVar(&cfg.logLevel, "log-level",
		getEnvOrDefault("SEABATTLE_LOG_LEVEL", "info"), "log level: debug, info, warn, error (env: SEABATTLE_LOG_LEVEL)")

	return cmd
}

func run(cfg *config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.logLevel),
	}))
	slog.SetDefault(logger)

	arch, err := buildArchive(cfg)
	if err != nil {
		logger.Error("failed to create archive", slog.String("error", err.Error()))
		return err
	}
	if closer, ok := arch.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	clk := clock.New()
	rnd := random.New()
	users := registry.NewUsers(clk, rnd, logger)
	games := registry.NewGames(clk, logger)
	dispatcher := server.NewDispatcher(users, games, arch, clk, logger)
	broker := server.NewBroker(dispatcher, cfg.workers, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	brokerDone := make(chan struct{})
	go func() {
		broker.Run(ctx)
		close(brokerDone)
	}()

	errCh := make(chan error, 2)

	tcpServer := transport.NewTCPServer(cfg.tcpAddr, broker, logger)
	go func() {
		errCh <- tcpServer.Start(ctx)
	}()

	httpConfig := transport.DefaultHTTPConfig()
	httpConfig.Addr = cfg.httpAddr
	httpServer := transport.NewHTTPServer(transport.NewHTTPHandler(broker, logger), httpConfig, logger)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info("server started",
		slog.String("tcp_addr", cfg.tcpAddr),
		slog.String("http_addr", cfg.httpAddr),
		slog.Int("workers", cfg.workers),
		slog.String("archive", cfg.archiveType))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("transport error", slog.String("error", err.Error()))
			cancel()
			<-brokerDone
			return err
		}
	case <-ctx.Done():
	}

	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
	<-brokerDone

	logger.Info("server stopped")
	return nil
}

func buildArchive(cfg *config) (archive.Archive, error) {
	switch cfg.archiveType {
	case archiveTypeMemory:
		return memoryarchive.New(), nil
	case archiveTypeRedis:
		if cfg.redisURL == "" {
			return nil, fmt.Errorf("--redis-url required when archive is %q", archiveTypeRedis)
		}
		redisCfg := redisarchive.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		return redisarchive.New(redisCfg)
	default:
		return nil, fmt.Errorf("invalid archive type %q: must be %q or %q",
			cfg.archiveType, archiveTypeMemory, archiveTypeRedis)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
