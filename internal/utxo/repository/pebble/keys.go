package pebble

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/stored"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

const (
	sizeHeight  = 4
	sizeTxid    = chainhash.HashSize
	sizePointer = stored.PointerSize
	sizeVout    = 3
)

// Key prefixes. Fixed-width key fields are big-endian so that iteration follows numeric order.
const (
	kBlock        = 0x01
	kHeader       = 0x02
	kTxPointer    = 0x03
	kLocation     = 0x04
	kSpent        = 0x05
	kFirstPointer = 0x06
	kNextPointer  = 0x10
	kTip          = 0x11
)

var (
	tipCodec = codec.Uint32[uint32]()
	// nextPointerCodec is wider than a pointer so that the value after MaxPointer fits.
	nextPointerCodec = codec.Uint64[stored.Pointer]()
	locationCodec    = codec.NewStruct(
		codec.FieldOf("height", codec.Uint32[uint32](),
			func(l *model.BlockLocation) uint32 { return l.Height },
			func(l *model.BlockLocation, v uint32) { l.Height = v }),
		codec.FieldOf("position", codec.Uint24[uint32](),
			func(l *model.BlockLocation) uint32 { return l.Position },
			func(l *model.BlockLocation, v uint32) { l.Position = v }),
	)
)

func keyBlock(height uint32) []byte {
	return heightKey(kBlock, height)
}

func keyHeader(height uint32) []byte {
	return heightKey(kHeader, height)
}

func keyFirstPointer(height uint32) []byte {
	return heightKey(kFirstPointer, height)
}

func heightKey(prefix byte, height uint32) []byte {
	k := make([]byte, 1+sizeHeight)
	k[0] = prefix
	binary.BigEndian.PutUint32(k[1:], height)
	return k
}

func keyTxPointer(txid chainhash.Hash) []byte {
	k := make([]byte, 1+sizeTxid)
	k[0] = kTxPointer
	copy(k[1:], txid[:])
	return k
}

func keyLocation(ptr stored.Pointer) []byte {
	k := make([]byte, 1+sizePointer)
	k[0] = kLocation
	putPointer(k[1:], ptr)
	return k
}

func keySpent(ptr stored.Pointer, vout uint32) []byte {
	k := make([]byte, 1+sizePointer+sizeVout)
	k[0] = kSpent
	putPointer(k[1:], ptr)
	put24(k[1+sizePointer:], vout)
	return k
}

func putPointer(b []byte, ptr stored.Pointer) {
	v := uint64(ptr)
	for i := sizePointer - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func put24(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
