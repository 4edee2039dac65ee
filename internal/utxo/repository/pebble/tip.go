package pebble

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// Tip returns the highest stored height. ok is false for an empty store.
func (r *Repository) Tip(ctx context.Context) (height uint32, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.observe("tip", err, start)
	}()
	return r.tip(ctx)
}

func (r *Repository) tip(ctx context.Context) (uint32, bool, error) {
	val, found, err := r.get(ctx, []byte{kTip})
	if err != nil {
		return 0, false, fmt.Errorf("get tip: %w", err)
	}
	if !found {
		return 0, false, nil
	}
	height, err := codec.DecodeAll(tipCodec, val)
	if err != nil {
		return 0, false, fmt.Errorf("decode tip: %w", err)
	}
	return height, true, nil
}

// NextPointer returns the pointer the next stored transaction will receive.
func (r *Repository) NextPointer(ctx context.Context) (ptr stored.Pointer, err error) {
	start := time.Now()
	defer func() {
		r.observe("next_pointer", err, start)
	}()
	return r.nextPointer(ctx)
}

func (r *Repository) nextPointer(ctx context.Context) (stored.Pointer, error) {
	val, found, err := r.get(ctx, []byte{kNextPointer})
	if err != nil {
		return 0, fmt.Errorf("get next pointer: %w", err)
	}
	if !found {
		return 0, nil
	}
	ptr, err := codec.DecodeAll(nextPointerCodec, val)
	if err != nil {
		return 0, fmt.Errorf("decode next pointer: %w", err)
	}
	return ptr, nil
}
