package pebble

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

// MarkSpent records the spending transaction of each output in marks.
func (r *Repository) MarkSpent(ctx context.Context, marks []model.SpentMark) (err error) {
	start := time.Now()
	defer func() {
		r.observe("mark_spent", err, start)
	}()

	if len(marks) == 0 {
		return nil
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	batch := r.db.NewBatch()
	defer func() {
		if cerr := batch.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", cerr)
		}
	}()

	if err = putSpent(batch, marks); err != nil {
		return err
	}

	size := batch.Len()
	if err = batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("commit spent batch: %w", err)
	}
	if r.metrics != nil {
		r.metrics.ObserveBytesWritten(size)
	}
	return nil
}

func putSpent(batch *pebble.Batch, marks []model.SpentMark) error {
	for _, mark := range marks {
		if _, err := safe.Uint24(mark.Vout); err != nil {
			return fmt.Errorf("vout of %s: %w", mark.Tx, err)
		}
		val, err := stored.PointerCodec.Encode(mark.Spender)
		if err != nil {
			return fmt.Errorf("encode spender of %s:%d: %w", mark.Tx, mark.Vout, err)
		}
		if err := batch.Set(keySpent(mark.Tx, mark.Vout), val, nil); err != nil {
			return fmt.Errorf("set spent %s:%d: %w", mark.Tx, mark.Vout, err)
		}
	}
	return nil
}

// Spender returns the transaction that spent output vout of tx. ok is false while it is unspent.
func (r *Repository) Spender(ctx context.Context, tx stored.Pointer, vout uint32) (spender stored.Pointer, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.observe("spender", err, start)
	}()

	val, found, err := r.get(ctx, keySpent(tx, vout))
	if err != nil {
		return 0, false, fmt.Errorf("get spent %s:%d: %w", tx, vout, err)
	}
	if !found {
		return 0, false, nil
	}
	spender, err = codec.DecodeAll(stored.PointerCodec, val)
	if err != nil {
		return 0, false, fmt.Errorf("decode spender of %s:%d: %w", tx, vout, err)
	}
	return spender, true, nil
}

// IsSpent reports whether output vout of tx has been spent.
func (r *Repository) IsSpent(ctx context.Context, tx stored.Pointer, vout uint32) (bool, error) {
	_, ok, err := r.Spender(ctx, tx, vout)
	return ok, err
}
