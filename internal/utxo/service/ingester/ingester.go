// Package ingester follows a node and appends its blocks to the store in compact form.
package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"go.uber.org/zap"
)

// Options tunes the ingestion loop. Zero values select defaults.
type Options struct {
	BatchSize   int
	WorkerCount int
}

// Service ingests missing heights in batches until the context is canceled.
type Service struct {
	logger            *zap.Logger
	metrics           Metrics
	sleep             func(context.Context, time.Duration, <-chan struct{}) (bool, error)
	sleepDuration     time.Duration
	idleSleepDuration time.Duration
	batchSize         int
	heightFetcher     HeightFetcher
	blockProcessor    BlockProcessor
	blockSignal       <-chan struct{}
}

// NewService builds a Service with dependencies. blockSignal is optional; when set, a value on it
// wakes the loop before the idle sleep elapses.
func NewService(
	repo Repository,
	source BlockSource,
	resolver Resolver,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
	opts Options,
) (*Service, error) {
	if repo == nil {
		return nil, errors.New("ingester repository is required")
	}
	if source == nil {
		return nil, errors.New("ingester block source is required")
	}
	if resolver == nil {
		return nil, errors.New("ingester resolver is required")
	}
	if metrics == nil {
		return nil, errors.New("ingester metrics is required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = defaultWorkerCount
	}

	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)

	return &Service{
		logger:            logger,
		metrics:           metrics,
		sleep:             clock.SleepOrSignal,
		sleepDuration:     sleepDuration,
		idleSleepDuration: idleSleepDuration,
		batchSize:         opts.BatchSize,
		blockSignal:       blockSignal,
		heightFetcher: &heightFetcher{
			source: source,
			repo:   repo,
			limit:  opts.BatchSize,
		},
		blockProcessor: &blockProcessor{
			source:      source,
			repo:        repo,
			resolver:    resolver,
			metrics:     metrics,
			logger:      logger.Named("blockProcessor"),
			workerCount: opts.WorkerCount,
		},
	}, nil
}

// Run starts the ingestion loop until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
			if _, sleepErr := s.sleep(ctx, s.sleepDuration, nil); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (s *Service) run(ctx context.Context) error {
	started := time.Now()
	heights, err := s.heightFetcher.Fetch(ctx)
	s.metrics.ObserveFetchMissing(err, started)
	if err != nil {
		s.logger.Error("fetch missing heights failed", zap.Error(err))
		return err
	}

	if len(heights) == 0 {
		s.logger.Debug("no new heights discovered; sleeping", zap.Duration("sleep", s.idleSleepDuration))
		return s.wait(ctx)
	}

	started = time.Now()
	err = s.blockProcessor.Process(ctx, heights)
	s.metrics.ObserveProcessBatch(err, len(heights), started)
	if err != nil {
		return err
	}

	if len(heights) < s.batchSize {
		return s.wait(ctx)
	}
	return nil
}

func (s *Service) wait(ctx context.Context) error {
	woken, err := s.sleep(ctx, s.idleSleepDuration, s.blockSignal)
	if woken {
		s.logger.Debug("woken by block signal")
	}
	return err
}
