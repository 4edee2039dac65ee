package stored

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// HeaderSize is the encoded size of a block header.
const HeaderSize = 80

// Header is a block header. Hash is derived from the encoding and is not stored.
type Header struct {
	Hash       chainhash.Hash
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// HeaderCodec encodes the 80-byte consensus header layout.
var HeaderCodec = codec.NewStruct(
	codec.FieldOf("version", codec.Int32[int32](),
		func(h *Header) int32 { return h.Version },
		func(h *Header, v int32) { h.Version = v }),
	codec.FieldOf("prevBlock", codec.Array32(),
		func(h *Header) [32]byte { return h.PrevBlock },
		func(h *Header, v [32]byte) { h.PrevBlock = v }),
	codec.FieldOf("merkleRoot", codec.Array32(),
		func(h *Header) [32]byte { return h.MerkleRoot },
		func(h *Header, v [32]byte) { h.MerkleRoot = v }),
	codec.FieldOf("timestamp", codec.Uint32[uint32](),
		func(h *Header) uint32 { return h.Timestamp },
		func(h *Header, v uint32) { h.Timestamp = v }),
	codec.FieldOf("bits", codec.Uint32[uint32](),
		func(h *Header) uint32 { return h.Bits },
		func(h *Header, v uint32) { h.Bits = v }),
	codec.FieldOf("nonce", codec.Uint32[uint32](),
		func(h *Header) uint32 { return h.Nonce },
		func(h *Header, v uint32) { h.Nonce = v }),
)

// EncodeHeader returns the 80-byte encoding of h.
func EncodeHeader(h Header) ([]byte, error) {
	return HeaderCodec.Encode(h)
}

// DecodeHeader decodes an 80-byte header and fills Hash with its double SHA-256.
func DecodeHeader(data []byte) (Header, error) {
	h, err := codec.DecodeAll[Header](HeaderCodec, data)
	if err != nil {
		return Header{}, fmt.Errorf("decode header: %w", err)
	}
	h.Hash = chainhash.DoubleHashH(data)
	return h, nil
}

// HeaderFromWire converts a btcd header.
func HeaderFromWire(h *wire.BlockHeader) Header {
	return Header{
		Hash:       h.BlockHash(),
		Version:    h.Version,
		PrevBlock:  h.PrevBlock,
		MerkleRoot: h.MerkleRoot,
		Timestamp:  uint32(h.Timestamp.Unix()),
		Bits:       h.Bits,
		Nonce:      h.Nonce,
	}
}

// Time returns the header timestamp in UTC.
func (h Header) Time() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}
