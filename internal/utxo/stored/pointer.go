// Package stored defines the compact on-disk representation of chain data and its binary codecs.
//
// Stored transactions reference the outputs they spend either by full transaction id
// (unresolved) or by a 48-bit Pointer into the local transaction index (resolved). Blocks are
// converted from canonical btcd wire blocks with FromBlock, which only ever produces unresolved
// inputs; resolution is a later rewrite driven by the pointer index.
package stored

import (
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// Pointer is the dense global address of a stored transaction.
type Pointer uint64

// MaxPointer is the largest address representable in 48 bits.
const MaxPointer Pointer = 1<<48 - 1

// PointerSize is the encoded width of a Pointer.
const PointerSize = 6

// PointerCodec encodes a Pointer as 6 little-endian bytes.
var PointerCodec = codec.Uint48[Pointer]()

// Valid reports whether p fits in 48 bits.
func (p Pointer) Valid() bool {
	return p <= MaxPointer
}

func (p Pointer) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
