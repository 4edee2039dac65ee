package stored

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

// Block is a stored block: the coinbase followed by the remaining transactions.
type Block struct {
	Coinbase CoinbaseTx
	Txs      []Tx
}

// minTxSize is the smallest possible Tx encoding: txId, version, lockTime and two empty vectors.
const minTxSize = 32 + 4 + 4 + 1 + 1

var txCountCodec = codec.Uint24[uint32]()

type blockCodec struct{}

// BlockCodec encodes a 3-byte transaction count excluding the coinbase, then the coinbase, then
// every other transaction in order.
var BlockCodec codec.Codec[Block] = blockCodec{}

func (blockCodec) Stride() codec.Stride {
	return codec.Variable()
}

func (blockCodec) Encode(b Block) ([]byte, error) {
	count, err := safe.Uint32(len(b.Txs))
	if err != nil {
		return nil, fmt.Errorf("tx count: %w: %w", codec.ErrRange, err)
	}
	out, err := txCountCodec.Encode(count)
	if err != nil {
		return nil, fmt.Errorf("tx count: %w", err)
	}
	coinbase, err := CoinbaseTxCodec.Encode(b.Coinbase)
	if err != nil {
		return nil, fmt.Errorf("coinbase tx %s: %w", b.Coinbase.TxID, err)
	}
	out = append(out, coinbase...)
	for i, tx := range b.Txs {
		encoded, err := TxCodec.Encode(tx)
		if err != nil {
			return nil, fmt.Errorf("tx %d (%s): %w", i, tx.TxID, err)
		}
		out = append(out, encoded...)
	}
	return out, nil
}

func (blockCodec) Decode(data []byte) (Block, int, error) {
	count, offset, err := txCountCodec.Decode(data)
	if err != nil {
		return Block{}, 0, fmt.Errorf("tx count: %w", err)
	}
	coinbase, n, err := CoinbaseTxCodec.Decode(data[offset:])
	if err != nil {
		return Block{}, 0, fmt.Errorf("coinbase tx: %w", err)
	}
	offset += n

	txs := make([]Tx, 0, min(int(count), (len(data)-offset)/minTxSize))
	for i := uint32(0); i < count; i++ {
		tx, n, err := TxCodec.Decode(data[offset:])
		if err != nil {
			return Block{}, 0, fmt.Errorf("tx %d of %d: %w: %w", i, count, codec.ErrCountMismatch, err)
		}
		txs = append(txs, tx)
		offset += n
	}
	return Block{Coinbase: coinbase, Txs: txs}, offset, nil
}

// EncodeBlock returns the stored encoding of b.
func EncodeBlock(b Block) ([]byte, error) {
	return BlockCodec.Encode(b)
}

// DecodeBlock decodes a stored block that must span all of data.
func DecodeBlock(data []byte) (Block, error) {
	return codec.DecodeAll(BlockCodec, data)
}

// TxIDs lists transaction ids in pointer assignment order, coinbase first.
func (b *Block) TxIDs() []chainhash.Hash {
	ids := make([]chainhash.Hash, 0, 1+len(b.Txs))
	ids = append(ids, b.Coinbase.TxID)
	for i := range b.Txs {
		ids = append(ids, b.Txs[i].TxID)
	}
	return ids
}

// UnresolvedTxIDs lists the distinct transaction ids referenced by unresolved inputs, in the
// order they are first seen.
func (b *Block) UnresolvedTxIDs() []chainhash.Hash {
	seen := make(map[chainhash.Hash]struct{})
	var ids []chainhash.Hash
	for i := range b.Txs {
		for j := range b.Txs[i].Vin {
			in := &b.Txs[i].Vin[j]
			if in.Kind != InputUnresolved {
				continue
			}
			if _, dup := seen[in.Unresolved.TxID]; dup {
				continue
			}
			seen[in.Unresolved.TxID] = struct{}{}
			ids = append(ids, in.Unresolved.TxID)
		}
	}
	return ids
}

// Resolve rewrites every unresolved input whose transaction id lookup knows and returns the
// number of inputs rewritten. Inputs lookup does not know stay unresolved.
func (b *Block) Resolve(lookup func(chainhash.Hash) (Pointer, bool)) int {
	resolved := 0
	for i := range b.Txs {
		for j := range b.Txs[i].Vin {
			in := &b.Txs[i].Vin[j]
			if in.Kind != InputUnresolved {
				continue
			}
			ptr, ok := lookup(in.Unresolved.TxID)
			if !ok {
				continue
			}
			in.Resolve(ptr)
			resolved++
		}
	}
	return resolved
}

// InputCounts returns the number of resolved and unresolved inputs of b.
func (b *Block) InputCounts() (resolved, unresolved int) {
	for i := range b.Txs {
		for j := range b.Txs[i].Vin {
			if b.Txs[i].Vin[j].Kind == InputResolved {
				resolved++
			} else {
				unresolved++
			}
		}
	}
	return resolved, unresolved
}
