package stored

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

var (
	// ErrEmptyBlock is returned when converting a block without transactions.
	ErrEmptyBlock = errors.New("block has no transactions")
	// ErrCoinbaseNoInput is returned when the first transaction of a block has no input.
	ErrCoinbaseNoInput = errors.New("coinbase transaction has no input")
)

// FromBlock converts a canonical block into its stored form.
//
// The first transaction becomes the coinbase: its sole input's signature script and sequence are
// kept, everything else about that input is dropped. Every input of the other transactions is
// converted to the unresolved variant. Outputs are tagged ScriptTypeRaw and unspent. Script and
// witness slices alias the wire block.
func FromBlock(block *wire.MsgBlock) (Block, error) {
	if block == nil || len(block.Transactions) == 0 {
		return Block{}, ErrEmptyBlock
	}

	coinbaseTx := block.Transactions[0]
	if len(coinbaseTx.TxIn) == 0 {
		return Block{}, fmt.Errorf("coinbase %s: %w", coinbaseTx.TxHash(), ErrCoinbaseNoInput)
	}
	coinbaseOut, err := convertOutputs(coinbaseTx.TxOut)
	if err != nil {
		return Block{}, fmt.Errorf("coinbase %s: %w", coinbaseTx.TxHash(), err)
	}

	txs := make([]Tx, 0, len(block.Transactions)-1)
	for _, msgTx := range block.Transactions[1:] {
		tx, err := convertTx(msgTx)
		if err != nil {
			return Block{}, fmt.Errorf("tx %s: %w", msgTx.TxHash(), err)
		}
		txs = append(txs, tx)
	}

	return Block{
		Coinbase: CoinbaseTx{
			TxID:     coinbaseTx.TxHash(),
			Version:  coinbaseTx.Version,
			LockTime: coinbaseTx.LockTime,
			Sequence: coinbaseTx.TxIn[0].Sequence,
			Coinbase: coinbaseTx.TxIn[0].SignatureScript,
			Vout:     coinbaseOut,
		},
		Txs: txs,
	}, nil
}

func convertTx(msgTx *wire.MsgTx) (Tx, error) {
	vout, err := convertOutputs(msgTx.TxOut)
	if err != nil {
		return Tx{}, err
	}
	vin := make([]TxInput, 0, len(msgTx.TxIn))
	for i, in := range msgTx.TxIn {
		index, err := safe.Uint24(in.PreviousOutPoint.Index)
		if err != nil {
			return Tx{}, fmt.Errorf("input %d prevout index: %w", i, err)
		}
		witness := [][]byte(in.Witness)
		if witness == nil {
			witness = [][]byte{}
		}
		vin = append(vin, TxInput{
			Kind: InputUnresolved,
			Unresolved: UnresolvedPrevOut{
				TxID: in.PreviousOutPoint.Hash,
				Vout: index,
			},
			Sequence:  in.Sequence,
			ScriptSig: in.SignatureScript,
			Witness:   witness,
		})
	}
	return Tx{
		TxID:     msgTx.TxHash(),
		Version:  msgTx.Version,
		LockTime: msgTx.LockTime,
		Vout:     vout,
		Vin:      vin,
	}, nil
}

func convertOutputs(outs []*wire.TxOut) ([]TxOutput, error) {
	converted := make([]TxOutput, 0, len(outs))
	for i, out := range outs {
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return nil, fmt.Errorf("output %d value: %w", i, err)
		}
		converted = append(converted, TxOutput{
			ScriptType:   ScriptTypeRaw,
			ScriptPubKey: out.PkScript,
			Value:        value,
		})
	}
	return converted, nil
}
