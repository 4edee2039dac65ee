package stored

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// Tx is a stored non-coinbase transaction. TxID is kept because it cannot be recovered without
// rehashing the transaction.
type Tx struct {
	TxID     chainhash.Hash
	Version  int32
	LockTime uint32
	Vout     []TxOutput
	Vin      []TxInput
}

// CoinbaseTx is the first transaction of a block. Its single implicit input is reduced to the
// coinbase script and sequence.
type CoinbaseTx struct {
	TxID     chainhash.Hash
	Version  int32
	LockTime uint32
	Sequence uint32
	Coinbase []byte
	Vout     []TxOutput
}

var voutsCodec = codec.Vector[TxOutput](TxOutputCodec)

// TxCodec encodes txId, version, lockTime, vout and vin in that order.
var TxCodec = codec.NewStruct(
	codec.FieldOf("txId", codec.Array32(),
		func(tx *Tx) [32]byte { return tx.TxID },
		func(tx *Tx, v [32]byte) { tx.TxID = v }),
	codec.FieldOf("version", codec.Int32[int32](),
		func(tx *Tx) int32 { return tx.Version },
		func(tx *Tx, v int32) { tx.Version = v }),
	codec.FieldOf("lockTime", codec.Uint32[uint32](),
		func(tx *Tx) uint32 { return tx.LockTime },
		func(tx *Tx, v uint32) { tx.LockTime = v }),
	codec.FieldOf("vout", voutsCodec,
		func(tx *Tx) []TxOutput { return tx.Vout },
		func(tx *Tx, v []TxOutput) { tx.Vout = v }),
	codec.FieldOf("vin", codec.Vector[TxInput](TxInputCodec),
		func(tx *Tx) []TxInput { return tx.Vin },
		func(tx *Tx, v []TxInput) { tx.Vin = v }),
)

// CoinbaseTxCodec encodes txId, version, lockTime, sequence, coinbase and vout in that order.
var CoinbaseTxCodec = codec.NewStruct(
	codec.FieldOf("txId", codec.Array32(),
		func(tx *CoinbaseTx) [32]byte { return tx.TxID },
		func(tx *CoinbaseTx, v [32]byte) { tx.TxID = v }),
	codec.FieldOf("version", codec.Int32[int32](),
		func(tx *CoinbaseTx) int32 { return tx.Version },
		func(tx *CoinbaseTx, v int32) { tx.Version = v }),
	codec.FieldOf("lockTime", codec.Uint32[uint32](),
		func(tx *CoinbaseTx) uint32 { return tx.LockTime },
		func(tx *CoinbaseTx, v uint32) { tx.LockTime = v }),
	codec.FieldOf("sequence", codec.Uint32[uint32](),
		func(tx *CoinbaseTx) uint32 { return tx.Sequence },
		func(tx *CoinbaseTx, v uint32) { tx.Sequence = v }),
	codec.FieldOf("coinbase", codec.VarBytes(),
		func(tx *CoinbaseTx) []byte { return tx.Coinbase },
		func(tx *CoinbaseTx, v []byte) { tx.Coinbase = v }),
	codec.FieldOf("vout", voutsCodec,
		func(tx *CoinbaseTx) []TxOutput { return tx.Vout },
		func(tx *CoinbaseTx, v []TxOutput) { tx.Vout = v }),
)
