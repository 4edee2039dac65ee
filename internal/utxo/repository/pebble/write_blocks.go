package pebble

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

// WriteBlocks atomically stores records together with their txid and location indexes and their
// spent marks, and advances the tip and the next pointer. Records must continue the stored chain: heights follow
// the tip without gaps and each record's first pointer equals the next free pointer.
func (r *Repository) WriteBlocks(ctx context.Context, records []model.StoredRecord) (err error) {
	start := time.Now()
	defer func() {
		r.observe("write_blocks", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tip, hasTip, err := r.tip(ctx)
	if err != nil {
		return err
	}
	next, err := r.nextPointer(ctx)
	if err != nil {
		return err
	}

	wantHeight := uint32(0)
	if hasTip {
		wantHeight = tip + 1
	}

	batch := r.db.NewBatch()
	defer func() {
		if cerr := batch.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", cerr)
		}
	}()

	for _, rec := range records {
		if rec.Height != wantHeight {
			return fmt.Errorf("record at height %d, want %d: %w", rec.Height, wantHeight, ErrHeightGap)
		}
		if rec.FirstPointer != next {
			return fmt.Errorf("record at height %d starts at pointer %s, want %s: %w",
				rec.Height, rec.FirstPointer, next, ErrPointerMismatch)
		}
		if uint64(rec.FirstPointer)+uint64(len(rec.TxIDs)) > uint64(stored.MaxPointer)+1 {
			return fmt.Errorf("record at height %d with %d txs: %w", rec.Height, len(rec.TxIDs), ErrPointerSpaceExhausted)
		}
		if err = putRecord(batch, rec); err != nil {
			return fmt.Errorf("record at height %d: %w", rec.Height, err)
		}
		next = rec.NextPointer()
		wantHeight = rec.Height + 1
	}

	nextVal, err := nextPointerCodec.Encode(next)
	if err != nil {
		return fmt.Errorf("encode next pointer: %w", err)
	}
	if err = batch.Set([]byte{kNextPointer}, nextVal, nil); err != nil {
		return fmt.Errorf("set next pointer: %w", err)
	}
	tipVal, err := tipCodec.Encode(wantHeight - 1)
	if err != nil {
		return fmt.Errorf("encode tip: %w", err)
	}
	if err = batch.Set([]byte{kTip}, tipVal, nil); err != nil {
		return fmt.Errorf("set tip: %w", err)
	}

	size := batch.Len()
	if err = batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit blocks batch: %w", err)
	}
	if r.metrics != nil {
		r.metrics.ObserveBytesWritten(size)
	}
	return nil
}

func putRecord(batch *pebble.Batch, rec model.StoredRecord) error {
	if err := batch.Set(keyBlock(rec.Height), rec.Block, nil); err != nil {
		return fmt.Errorf("set block: %w", err)
	}
	if err := batch.Set(keyHeader(rec.Height), rec.Header, nil); err != nil {
		return fmt.Errorf("set header: %w", err)
	}
	firstVal, err := stored.PointerCodec.Encode(rec.FirstPointer)
	if err != nil {
		return fmt.Errorf("encode first pointer: %w", err)
	}
	if err := batch.Set(keyFirstPointer(rec.Height), firstVal, nil); err != nil {
		return fmt.Errorf("set first pointer: %w", err)
	}

	for i, txid := range rec.TxIDs {
		position, err := safe.Uint24(i)
		if err != nil {
			return fmt.Errorf("tx position %d: %w", i, err)
		}
		ptr := rec.FirstPointer + stored.Pointer(i)

		ptrVal, err := stored.PointerCodec.Encode(ptr)
		if err != nil {
			return fmt.Errorf("encode pointer of %s: %w", txid, err)
		}
		if err := batch.Set(keyTxPointer(txid), ptrVal, nil); err != nil {
			return fmt.Errorf("set pointer of %s: %w", txid, err)
		}

		locVal, err := locationCodec.Encode(model.BlockLocation{Height: rec.Height, Position: position})
		if err != nil {
			return fmt.Errorf("encode location of %s: %w", ptr, err)
		}
		if err := batch.Set(keyLocation(ptr), locVal, nil); err != nil {
			return fmt.Errorf("set location of %s: %w", ptr, err)
		}
	}
	return putSpent(batch, rec.SpentMarks)
}
