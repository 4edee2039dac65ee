package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

// ErrBlockHashMismatch is returned when the node serves a block that does not hash to the
// requested hash.
var ErrBlockHashMismatch = errors.New("block hash mismatch")

// BlockSource implements chain.BlockSource over a node RPC client.
type BlockSource struct {
	rpc NodeClient
}

// NewBlockSource creates a BlockSource for Bitcoin.
func NewBlockSource(rpc NodeClient) *BlockSource {
	return &BlockSource{rpc: rpc}
}

// LatestHeight returns the latest block height from the node.
func (s *BlockSource) LatestHeight(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint32(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the canonical block at the given height.
func (s *BlockSource) FetchBlock(ctx context.Context, height uint32) (*wire.MsgBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, err := s.rpc.GetBlock(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	if got := block.BlockHash(); got != *hash {
		return nil, fmt.Errorf("block at height %d: got %s, want %s: %w", height, got, hash, ErrBlockHashMismatch)
	}
	return block, nil
}
