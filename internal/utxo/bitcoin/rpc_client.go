package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/ratelimit"
)

// RPCClient wraps a node client with metrics instrumentation and request pacing.
type RPCClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
	rl         ratelimit.Limiter
}

// NewRPCClient constructs an instrumented RPC client. client is usually a *rpcclient.Client.
// A non-positive rps leaves requests unpaced.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics, rps int) *RPCClient {
	rl := ratelimit.NewUnlimited()
	if rps > 0 {
		rl = ratelimit.New(rps)
	}
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		rl:         rl,
	}
}

// GetBlockCount returns the height of the best block.
func (r *RPCClient) GetBlockCount() (count int64, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return r.client.GetBlockCount()
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(blockHeight int64) (hash *chainhash.Hash, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return r.client.GetBlockHash(blockHeight)
}

// GetBlock returns the deserialized block for a hash.
func (r *RPCClient) GetBlock(blockHash *chainhash.Hash) (block *wire.MsgBlock, err error) {
	r.rl.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block", err, started)
	}()
	return r.client.GetBlock(blockHash)
}
