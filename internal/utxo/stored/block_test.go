package stored

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

func output(value uint64, script ...byte) TxOutput {
	if script == nil {
		script = []byte{}
	}
	return TxOutput{ScriptType: ScriptTypeRaw, ScriptPubKey: script, Value: value}
}

func unresolvedInput(txid chainhash.Hash, vout uint32) TxInput {
	return TxInput{
		Kind:       InputUnresolved,
		Unresolved: UnresolvedPrevOut{TxID: txid, Vout: vout},
		Sequence:   0xfffffffe,
		ScriptSig:  []byte{0x51},
		Witness:    [][]byte{},
	}
}

func sampleBlock() Block {
	return Block{
		Coinbase: CoinbaseTx{
			TxID:     chainhash.Hash{0x01},
			Version:  1,
			Sequence: 0xffffffff,
			Coinbase: []byte{},
			Vout:     []TxOutput{output(5000000000, 0x76, 0xa9)},
		},
		Txs: []Tx{
			{
				TxID:    chainhash.Hash{0x02},
				Version: 2,
				Vout:    []TxOutput{output(1000)},
				Vin:     []TxInput{unresolvedInput(chainhash.Hash{0x01}, 0)},
			},
			{
				TxID:     chainhash.Hash{0x03},
				Version:  2,
				LockTime: 700000,
				Vout:     []TxOutput{output(900, 0x00, 0x14)},
				Vin: []TxInput{{
					Kind:      InputResolved,
					Resolved:  ResolvedPrevOut{Tx: 0x0102030405, Vout: 3},
					Sequence:  1,
					ScriptSig: []byte{},
					Witness:   [][]byte{{0x30, 0x44}, {0x02}},
				}},
			},
		},
	}
}

func TestBlockCodecRoundTrip(t *testing.T) {
	b := sampleBlock()
	encoded, err := EncodeBlock(b)
	if err != nil {
		t.Fatalf("EncodeBlock() error = %v", err)
	}
	if !bytes.Equal(encoded[:3], []byte{0x02, 0x00, 0x00}) {
		t.Fatalf("EncodeBlock() count prefix = %x, want 020000", encoded[:3])
	}

	decoded, n, err := BlockCodec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if n != len(encoded) {
		t.Fatalf("Decode() consumed %d of %d bytes", n, len(encoded))
	}
	if !reflect.DeepEqual(decoded, b) {
		t.Fatalf("Decode() = %+v, want %+v", decoded, b)
	}
}

func TestBlockCodecDecodeErrors(t *testing.T) {
	encoded, err := EncodeBlock(sampleBlock())
	if err != nil {
		t.Fatalf("EncodeBlock() error = %v", err)
	}
	overstated := bytes.Clone(encoded)
	overstated[0] = 0x03

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "declared count exceeds transactions", data: overstated, wantErr: codec.ErrCountMismatch},
		{name: "truncated last transaction", data: encoded[:len(encoded)-1], wantErr: codec.ErrCountMismatch},
		{name: "missing count", data: []byte{0x01}, wantErr: codec.ErrTruncated},
		{name: "trailing bytes", data: append(bytes.Clone(encoded), 0x00), wantErr: codec.ErrTrailingBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBlock(tt.data); !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeBlock() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBlockResolve(t *testing.T) {
	b := sampleBlock()
	b.Txs[1].Vin = append(b.Txs[1].Vin,
		unresolvedInput(chainhash.Hash{0x09}, 0),
		unresolvedInput(chainhash.Hash{0x01}, 1),
	)

	ids := b.UnresolvedTxIDs()
	if !reflect.DeepEqual(ids, []chainhash.Hash{{0x01}, {0x09}}) {
		t.Fatalf("UnresolvedTxIDs() = %v", ids)
	}

	known := map[chainhash.Hash]Pointer{{0x01}: 100}
	got := b.Resolve(func(h chainhash.Hash) (Pointer, bool) {
		p, ok := known[h]
		return p, ok
	})
	if got != 2 {
		t.Fatalf("Resolve() = %d, want 2", got)
	}
	if in := b.Txs[1].Vin[2]; in.Kind != InputResolved || in.Resolved != (ResolvedPrevOut{Tx: 100, Vout: 1}) {
		t.Fatalf("Resolve() input = %+v", in)
	}
	if in := b.Txs[1].Vin[1]; in.Kind != InputUnresolved {
		t.Fatalf("unknown txid was resolved: %+v", in)
	}
	if resolved, unresolved := b.InputCounts(); resolved != 3 || unresolved != 1 {
		t.Fatalf("InputCounts() = (%d, %d), want (3, 1)", resolved, unresolved)
	}
	if ids := b.TxIDs(); !reflect.DeepEqual(ids, []chainhash.Hash{{0x01}, {0x02}, {0x03}}) {
		t.Fatalf("TxIDs() = %v", ids)
	}
}

func TestTxOutputSpentNotEncoded(t *testing.T) {
	o := output(1, 0xac)
	o.Spent = true
	encoded, err := TxOutputCodec.Encode(o)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := []byte{0x00, 0x01, 0xac, 0x01, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(encoded, want) {
		t.Fatalf("Encode() = %x, want %x", encoded, want)
	}
	decoded, err := codec.DecodeAll[TxOutput](TxOutputCodec, encoded)
	if err != nil || decoded.Spent {
		t.Fatalf("DecodeAll() = (%+v, %v), want unspent", decoded, err)
	}
}
