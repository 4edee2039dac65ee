package stored

import "github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"

// ScriptType tags how an output script is stored.
type ScriptType string

// ScriptTypeRaw stores the script bytes verbatim.
const ScriptTypeRaw ScriptType = "raw"

var scriptTypeCodec = codec.MustEnum(codec.NewEnum(
	func(t ScriptType) string { return string(t) },
	codec.Case(string(ScriptTypeRaw), codec.Unit(),
		func(struct{}) ScriptType { return ScriptTypeRaw },
		func(ScriptType) struct{} { return struct{}{} }),
))

// TxOutput is one transaction output. Spent is runtime state and is not encoded.
type TxOutput struct {
	ScriptType   ScriptType
	ScriptPubKey []byte
	Value        uint64
	Spent        bool
}

// TxOutputCodec encodes the script type tag, the script and the value in satoshis.
var TxOutputCodec = codec.NewStruct(
	codec.FieldOf("scriptType", codec.Codec[ScriptType](scriptTypeCodec),
		func(o *TxOutput) ScriptType { return o.ScriptType },
		func(o *TxOutput, v ScriptType) { o.ScriptType = v }),
	codec.FieldOf("scriptPubKey", codec.VarBytes(),
		func(o *TxOutput) []byte { return o.ScriptPubKey },
		func(o *TxOutput, v []byte) { o.ScriptPubKey = v }),
	codec.FieldOf("value", codec.Uint64[uint64](),
		func(o *TxOutput) uint64 { return o.Value },
		func(o *TxOutput, v uint64) { o.Value = v }),
)
