package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-store/pkg/safe"
)

// OutputDescription is the human-readable view of a stored output script and value.
type OutputDescription struct {
	Class     string
	Addresses []string
	Amount    btcutil.Amount
}

// ScriptDecoder extracts script classes and addresses from raw output scripts.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder using the params of the provided network.
func NewScriptDecoder(coin model.Coin, network model.Network) (*ScriptDecoder, error) {
	params, err := model.ChainParams(coin, network)
	if err != nil {
		return nil, err
	}
	return &ScriptDecoder{params: params}, nil
}

// Describe classifies script and converts value in satoshis to an amount. Scripts that do not
// parse are reported as non-standard without addresses.
func (d *ScriptDecoder) Describe(script []byte, value uint64) (OutputDescription, error) {
	sats, err := safe.Int64(value)
	if err != nil {
		return OutputDescription{}, fmt.Errorf("output value: %w", err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return OutputDescription{Class: txscript.NonStandardTy.String(), Amount: btcutil.Amount(sats)}, nil
	}

	addresses := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		addresses = append(addresses, addr.EncodeAddress())
	}
	return OutputDescription{
		Class:     class.String(),
		Addresses: addresses,
		Amount:    btcutil.Amount(sats),
	}, nil
}
