package ingester

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	HeightFetcher interface {
		Fetch(ctx context.Context) ([]uint32, error)
	}
	BlockProcessor interface {
		Process(ctx context.Context, heights []uint32) error
	}
	BlockSource interface {
		chain.BlockSource
	}
	Repository interface {
		Tip(ctx context.Context) (uint32, bool, error)
		NextPointer(ctx context.Context) (stored.Pointer, error)
		WriteBlocks(ctx context.Context, records []model.StoredRecord) error
	}
	Resolver interface {
		Seed(txid chainhash.Hash, ptr stored.Pointer)
		Reset()
		Resolve(ctx context.Context, block *stored.Block) (int, error)
	}
	Metrics interface {
		ObserveFetchMissing(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint32, started time.Time)
		ObserveEncodedBytes(n int)
		ObserveInputs(resolved, unresolved int)
		SetTip(height uint32)
	}
)
