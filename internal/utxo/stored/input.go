package stored

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/codec"
)

// InputKind selects the active prevout shape of a TxInput.
type InputKind string

const (
	// InputResolved references the spent transaction by Pointer.
	InputResolved InputKind = "resolved"
	// InputUnresolved references the spent transaction by full id.
	InputUnresolved InputKind = "unresolved"
)

// ResolvedPrevOut is a prevout whose transaction is indexed locally.
type ResolvedPrevOut struct {
	Tx   Pointer
	Vout uint32
}

// UnresolvedPrevOut is a prevout addressed by transaction id.
type UnresolvedPrevOut struct {
	TxID chainhash.Hash
	Vout uint32
}

// TxInput is a non-coinbase transaction input. Kind decides which of Resolved and Unresolved
// is meaningful; the other is zero.
type TxInput struct {
	Kind       InputKind
	Resolved   ResolvedPrevOut
	Unresolved UnresolvedPrevOut
	Sequence   uint32
	ScriptSig  []byte
	Witness    [][]byte
}

// Vout returns the spent output index of the active prevout.
func (in *TxInput) Vout() uint32 {
	if in.Kind == InputResolved {
		return in.Resolved.Vout
	}
	return in.Unresolved.Vout
}

// Resolve rewrites an unresolved input to reference tx by pointer. Resolved inputs are left as is.
func (in *TxInput) Resolve(tx Pointer) {
	if in.Kind != InputUnresolved {
		return
	}
	in.Resolved = ResolvedPrevOut{Tx: tx, Vout: in.Unresolved.Vout}
	in.Unresolved = UnresolvedPrevOut{}
	in.Kind = InputResolved
}

var voutCodec = codec.Uint24[uint32]()

var resolvedPrevOutCodec = codec.NewStruct(
	codec.FieldOf("tx", PointerCodec,
		func(p *ResolvedPrevOut) Pointer { return p.Tx },
		func(p *ResolvedPrevOut, v Pointer) { p.Tx = v }),
	codec.FieldOf("vout", voutCodec,
		func(p *ResolvedPrevOut) uint32 { return p.Vout },
		func(p *ResolvedPrevOut, v uint32) { p.Vout = v }),
)

var unresolvedPrevOutCodec = codec.NewStruct(
	codec.FieldOf("txId", codec.Array32(),
		func(p *UnresolvedPrevOut) [32]byte { return p.TxID },
		func(p *UnresolvedPrevOut, v [32]byte) { p.TxID = v }),
	codec.FieldOf("vout", voutCodec,
		func(p *UnresolvedPrevOut) uint32 { return p.Vout },
		func(p *UnresolvedPrevOut, v uint32) { p.Vout = v }),
)

// WitnessCodec encodes the witness stack as a vector of byte strings.
var WitnessCodec = codec.Vector(codec.VarBytes())

// inputCodec lays out one input variant: the variant's prevout followed by the shared fields.
func inputCodec(prevOut codec.Field[TxInput]) *codec.Struct[TxInput] {
	return codec.NewStruct(
		prevOut,
		codec.FieldOf("sequence", codec.Uint32[uint32](),
			func(in *TxInput) uint32 { return in.Sequence },
			func(in *TxInput, v uint32) { in.Sequence = v }),
		codec.FieldOf("scriptSig", codec.VarBytes(),
			func(in *TxInput) []byte { return in.ScriptSig },
			func(in *TxInput, v []byte) { in.ScriptSig = v }),
		codec.FieldOf("witness", WitnessCodec,
			func(in *TxInput) [][]byte { return in.Witness },
			func(in *TxInput, v [][]byte) { in.Witness = v }),
	)
}

func withKind(kind InputKind) func(TxInput) TxInput {
	return func(in TxInput) TxInput {
		in.Kind = kind
		return in
	}
}

func identity(in TxInput) TxInput { return in }

// TxInputCodec is the resolved/unresolved tagged union. Tags follow the sorted variant names,
// so resolved is 0 and unresolved is 1.
var TxInputCodec = codec.MustEnum(codec.NewEnum(
	func(in TxInput) string { return string(in.Kind) },
	codec.Case[TxInput, TxInput](string(InputResolved),
		inputCodec(codec.FieldOf("prevOut", codec.Codec[ResolvedPrevOut](resolvedPrevOutCodec),
			func(in *TxInput) ResolvedPrevOut { return in.Resolved },
			func(in *TxInput, v ResolvedPrevOut) { in.Resolved = v })),
		withKind(InputResolved), identity),
	codec.Case[TxInput, TxInput](string(InputUnresolved),
		inputCodec(codec.FieldOf("prevOut", codec.Codec[UnresolvedPrevOut](unresolvedPrevOutCodec),
			func(in *TxInput) UnresolvedPrevOut { return in.Unresolved },
			func(in *TxInput, v UnresolvedPrevOut) { in.Unresolved = v })),
		withKind(InputUnresolved), identity),
))
