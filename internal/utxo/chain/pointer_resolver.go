package chain

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
)

// pointerResolverBatchSize controls how many txids are fetched in one index call.
// It is a var to allow overriding in tests.
var pointerResolverBatchSize = 1000

// PointerResolver rewrites unresolved inputs to pointers known either to the index or to the
// in-flight batch seeded through Seed. It is not safe for concurrent use.
type PointerResolver struct {
	index PointerIndex
	local map[chainhash.Hash]stored.Pointer
}

// NewPointerResolver constructs a PointerResolver backed by index.
func NewPointerResolver(index PointerIndex) *PointerResolver {
	return &PointerResolver{
		index: index,
		local: make(map[chainhash.Hash]stored.Pointer),
	}
}

// Seed records a pointer assigned in the current batch and not yet persisted.
func (r *PointerResolver) Seed(txid chainhash.Hash, ptr stored.Pointer) {
	r.local[txid] = ptr
}

// Reset forgets seeded pointers once they are persisted.
func (r *PointerResolver) Reset() {
	clear(r.local)
}

// Lookup returns the pointers of txids, consulting seeded entries first and querying the index
// in batches for the rest. Unknown txids are absent from the result.
func (r *PointerResolver) Lookup(ctx context.Context, txids []chainhash.Hash) (map[chainhash.Hash]stored.Pointer, error) {
	result := make(map[chainhash.Hash]stored.Pointer, len(txids))

	seen := make(map[chainhash.Hash]struct{}, len(txids))
	missing := make([]chainhash.Hash, 0, len(txids))
	for _, txid := range txids {
		if _, dup := seen[txid]; dup {
			continue
		}
		seen[txid] = struct{}{}
		if ptr, ok := r.local[txid]; ok {
			result[txid] = ptr
			continue
		}
		missing = append(missing, txid)
	}

	size := pointerResolverBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(missing); start += size {
		end := min(start+size, len(missing))

		found, err := r.index.PointersByTxIDs(ctx, missing[start:end])
		if err != nil {
			return nil, fmt.Errorf("query pointers for txids: %w", err)
		}
		for txid, ptr := range found {
			result[txid] = ptr
		}
	}

	return result, nil
}

// Resolve rewrites the unresolved inputs of block whose transactions are known and returns how
// many were rewritten. Inputs spending unknown transactions stay unresolved.
func (r *PointerResolver) Resolve(ctx context.Context, block *stored.Block) (int, error) {
	txids := block.UnresolvedTxIDs()
	if len(txids) == 0 {
		return 0, nil
	}
	known, err := r.Lookup(ctx, txids)
	if err != nil {
		return 0, err
	}
	return block.Resolve(func(txid chainhash.Hash) (stored.Pointer, bool) {
		ptr, ok := known[txid]
		return ptr, ok
	}), nil
}
