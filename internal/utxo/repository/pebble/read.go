package pebble

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// Block returns the decoded stored block at height.
func (r *Repository) Block(ctx context.Context, height uint32) (block stored.Block, err error) {
	start := time.Now()
	defer func() {
		r.observe("block", err, start)
	}()

	val, found, err := r.get(ctx, keyBlock(height))
	if err != nil {
		return stored.Block{}, fmt.Errorf("get block %d: %w", height, err)
	}
	if !found {
		return stored.Block{}, fmt.Errorf("block %d: %w", height, ErrNotFound)
	}
	block, err = stored.DecodeBlock(val)
	if err != nil {
		return stored.Block{}, fmt.Errorf("decode block %d: %w", height, err)
	}
	return block, nil
}

// Header returns the decoded header at height.
func (r *Repository) Header(ctx context.Context, height uint32) (header stored.Header, err error) {
	start := time.Now()
	defer func() {
		r.observe("header", err, start)
	}()

	val, found, err := r.get(ctx, keyHeader(height))
	if err != nil {
		return stored.Header{}, fmt.Errorf("get header %d: %w", height, err)
	}
	if !found {
		return stored.Header{}, fmt.Errorf("header %d: %w", height, ErrNotFound)
	}
	header, err = stored.DecodeHeader(val)
	if err != nil {
		return stored.Header{}, fmt.Errorf("decode header %d: %w", height, err)
	}
	return header, nil
}

// FirstPointer returns the pointer of the coinbase of the block at height. Unlike a coinbase txid
// lookup it is unambiguous for blocks whose coinbase txid was reused.
func (r *Repository) FirstPointer(ctx context.Context, height uint32) (ptr stored.Pointer, err error) {
	start := time.Now()
	defer func() {
		r.observe("first_pointer", err, start)
	}()

	val, found, err := r.get(ctx, keyFirstPointer(height))
	if err != nil {
		return 0, fmt.Errorf("get first pointer %d: %w", height, err)
	}
	if !found {
		return 0, fmt.Errorf("first pointer %d: %w", height, ErrNotFound)
	}
	ptr, err = codec.DecodeAll(stored.PointerCodec, val)
	if err != nil {
		return 0, fmt.Errorf("decode first pointer %d: %w", height, err)
	}
	return ptr, nil
}

// Locate returns the height and in-block position of the transaction at ptr.
func (r *Repository) Locate(ctx context.Context, ptr stored.Pointer) (loc model.BlockLocation, err error) {
	start := time.Now()
	defer func() {
		r.observe("locate", err, start)
	}()

	val, found, err := r.get(ctx, keyLocation(ptr))
	if err != nil {
		return model.BlockLocation{}, fmt.Errorf("get location of %s: %w", ptr, err)
	}
	if !found {
		return model.BlockLocation{}, fmt.Errorf("location of %s: %w", ptr, ErrNotFound)
	}
	loc, err = codec.DecodeAll[model.BlockLocation](locationCodec, val)
	if err != nil {
		return model.BlockLocation{}, fmt.Errorf("decode location of %s: %w", ptr, err)
	}
	return loc, nil
}
