package model

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
)

// StoredRecord is one converted, resolved and encoded block ready to be persisted.
type StoredRecord struct {
	Height uint32
	Hash   chainhash.Hash
	// FirstPointer is the pointer of the coinbase; the remaining transactions follow densely.
	FirstPointer stored.Pointer
	// TxIDs lists transaction ids in pointer order, coinbase first.
	TxIDs  []chainhash.Hash
	Block  []byte
	Header []byte
	// SpentMarks are the outputs consumed by the resolved inputs of the block. They are
	// written in the same batch as the block.
	SpentMarks []SpentMark
}

// NextPointer returns the first pointer after the transactions of r.
func (r StoredRecord) NextPointer() stored.Pointer {
	return r.FirstPointer + stored.Pointer(len(r.TxIDs))
}

// SpentMark records that output Vout of transaction Tx was consumed by transaction Spender.
type SpentMark struct {
	Tx      stored.Pointer
	Vout    uint32
	Spender stored.Pointer
}

// BlockLocation is where a transaction pointer lives: block height and position in the block,
// the coinbase being position 0.
type BlockLocation struct {
	Height   uint32
	Position uint32
}
