package pebble

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// PointersByTxIDs returns the pointers of the stored transactions among txids. Unknown txids are
// absent from the result.
func (r *Repository) PointersByTxIDs(ctx context.Context, txids []chainhash.Hash) (result map[chainhash.Hash]stored.Pointer, err error) {
	start := time.Now()
	defer func() {
		r.observe("pointers_by_txids", err, start)
	}()

	result = make(map[chainhash.Hash]stored.Pointer, len(txids))
	for _, txid := range txids {
		val, found, err := r.get(ctx, keyTxPointer(txid))
		if err != nil {
			return nil, fmt.Errorf("get pointer of %s: %w", txid, err)
		}
		if !found {
			continue
		}
		ptr, err := codec.DecodeAll(stored.PointerCodec, val)
		if err != nil {
			return nil, fmt.Errorf("decode pointer of %s: %w", txid, err)
		}
		result[txid] = ptr
	}
	return result, nil
}
