// Package chain defines the collaborators shared between stored-chain ingestion components.
package chain

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource provides canonical blocks by height.
	BlockSource interface {
		LatestHeight(ctx context.Context) (uint32, error)
		FetchBlock(ctx context.Context, height uint32) (*wire.MsgBlock, error)
	}

	// PointerIndex maps transaction ids to the pointers they were stored under. Unknown ids are
	// absent from the result.
	PointerIndex interface {
		PointersByTxIDs(ctx context.Context, txids []chainhash.Hash) (map[chainhash.Hash]stored.Pointer, error)
	}
)
