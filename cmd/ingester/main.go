package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/repository/pebble"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/service/ingester"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	DataDir     string        `long:"data-dir" env:"STORE_DATA_DIR" description:"pebble data directory" required:"true"`
	Coin        model.Coin    `long:"coin" env:"STORE_COIN" description:"coin name" default:"btc"`
	Network     model.Network `long:"network" env:"STORE_NETWORK" description:"network name" default:"mainnet"`
	RPCURL      string        `long:"rpc-url" env:"STORE_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser     string        `long:"rpc-user" env:"STORE_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword string        `long:"rpc-password" env:"STORE_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRPS      int           `long:"rpc-rps" env:"STORE_RPC_RPS" description:"maximum RPC requests per second, 0 for no limit" default:"0"`
	MetricsAddr string        `long:"metrics-addr" env:"STORE_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	BatchSize   int           `long:"batch-size" env:"STORE_BATCH_SIZE" description:"heights ingested per batch" default:"100"`
	Workers     int           `long:"workers" env:"STORE_WORKERS" description:"concurrent block fetches" default:"8"`
	ZMQAddr     string        `long:"zmq-addr" env:"STORE_ZMQ_ADDR" description:"bitcoind zmqpubhashblock endpoint, requires the zmq build tag"`
	DevLog      bool          `long:"dev-log" env:"STORE_DEV_LOG" description:"human readable development logging"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	logger, err := newLogger(cfg.DevLog)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.Coin, err = model.ParseCoin(string(cfg.Coin)); err != nil {
		logger.Fatal("invalid coin", zap.Error(err))
	}
	if _, err := model.ChainParams(cfg.Coin, cfg.Network); err != nil {
		logger.Fatal("unsupported chain", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("utxo store ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := pebble.Open(cfg.DataDir, logger, metrics.NewRepository(cfg.Coin, cfg.Network))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init utxo rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := bitcoin.NewRPCClient(rpcClient, metrics.NewRPCClient(cfg.Coin, cfg.Network), cfg.RPCRPS)

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	svc, err := ingester.NewService(
		repo,
		bitcoin.NewBlockSource(rpc),
		chain.NewPointerResolver(repo),
		metrics.NewIngester(cfg.Coin, cfg.Network),
		cfg.Coin,
		cfg.Network,
		logger,
		blockSignal,
		ingester.Options{BatchSize: cfg.BatchSize, WorkerCount: cfg.Workers},
	)
	if err != nil {
		return err
	}

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("ingester stopped")
	return nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
