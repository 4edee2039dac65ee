package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/workerpool"
	"go.uber.org/zap"
)

type blockProcessor struct {
	source      BlockSource
	repo        Repository
	resolver    Resolver
	metrics     Metrics
	logger      *zap.Logger
	workerCount int
}

type fetchedBlock struct {
	height uint32
	hash   chainhash.Hash
	block  stored.Block
	header stored.Header
}

// Process fetches heights concurrently, then assigns pointers, resolves inputs and encodes the
// blocks in height order and writes them together with their spent outputs in one batch.
func (p *blockProcessor) Process(ctx context.Context, heights []uint32) error {
	if len(heights) == 0 {
		return nil
	}

	fetched, err := workerpool.Map(ctx, p.workerCount, heights, p.fetch)
	if err != nil {
		return fmt.Errorf("fetch blocks: %w", err)
	}

	next, err := p.repo.NextPointer(ctx)
	if err != nil {
		return fmt.Errorf("next pointer: %w", err)
	}

	defer p.resolver.Reset()
	records := make([]model.StoredRecord, 0, len(fetched))
	marks := 0
	for _, fb := range fetched {
		rec, err := p.store(ctx, fb, next)
		if err != nil {
			return fmt.Errorf("height %d: %w", fb.height, err)
		}
		records = append(records, rec)
		marks += len(rec.SpentMarks)
		next = rec.NextPointer()
	}

	if err := p.repo.WriteBlocks(ctx, records); err != nil {
		return fmt.Errorf("write blocks %d..%d: %w", heights[0], heights[len(heights)-1], err)
	}
	tip := records[len(records)-1].Height
	p.metrics.SetTip(tip)
	p.logger.Info("stored blocks",
		zap.Uint32("from", records[0].Height),
		zap.Uint32("to", tip),
		zap.Stringer("next_pointer", next),
		zap.Int("spent_marks", marks),
	)
	return nil
}

func (p *blockProcessor) fetch(ctx context.Context, height uint32) (fb fetchedBlock, err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessHeight(err, height, started)
	}()

	msg, err := p.source.FetchBlock(ctx, height)
	if err != nil {
		return fetchedBlock{}, fmt.Errorf("fetch block %d: %w", height, err)
	}
	block, err := stored.FromBlock(msg)
	if err != nil {
		return fetchedBlock{}, fmt.Errorf("convert block %d: %w", height, err)
	}
	return fetchedBlock{
		height: height,
		hash:   msg.BlockHash(),
		block:  block,
		header: stored.HeaderFromWire(&msg.Header),
	}, nil
}

// store assigns pointers from first to the transactions of fb, coinbase first, resolves its
// inputs and encodes it.
func (p *blockProcessor) store(ctx context.Context, fb fetchedBlock, first stored.Pointer) (model.StoredRecord, error) {
	txids := fb.block.TxIDs()
	for i, txid := range txids {
		p.resolver.Seed(txid, first+stored.Pointer(i))
	}

	if _, err := p.resolver.Resolve(ctx, &fb.block); err != nil {
		return model.StoredRecord{}, fmt.Errorf("resolve inputs: %w", err)
	}
	p.metrics.ObserveInputs(fb.block.InputCounts())

	encoded, err := stored.EncodeBlock(fb.block)
	if err != nil {
		return model.StoredRecord{}, fmt.Errorf("encode block: %w", err)
	}
	header, err := stored.EncodeHeader(fb.header)
	if err != nil {
		return model.StoredRecord{}, fmt.Errorf("encode header: %w", err)
	}
	p.metrics.ObserveEncodedBytes(len(encoded))

	return model.StoredRecord{
		Height:       fb.height,
		Hash:         fb.hash,
		FirstPointer: first,
		TxIDs:        txids,
		Block:        encoded,
		Header:       header,
		SpentMarks:   spentMarks(&fb.block, first),
	}, nil
}

// spentMarks lists the outputs consumed by the resolved inputs of block. The transaction at
// index i of block.Txs has pointer first+1+i.
func spentMarks(block *stored.Block, first stored.Pointer) []model.SpentMark {
	var marks []model.SpentMark
	for i := range block.Txs {
		spender := first + 1 + stored.Pointer(i)
		for _, in := range block.Txs[i].Vin {
			if in.Kind != stored.InputResolved {
				continue
			}
			marks = append(marks, model.SpentMark{
				Tx:      in.Resolved.Tx,
				Vout:    in.Resolved.Vout,
				Spender: spender,
			})
		}
	}
	return marks
}
