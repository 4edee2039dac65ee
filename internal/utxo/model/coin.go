// Package model defines domain models shared by the stored-chain ingestion components.
package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Coin identifies the chain family being ingested.
type Coin string

// Network identifies the network of a coin.
type Network string

var (
	BTC Coin = "BTC"
	LTC Coin = "LTC"
	RVN Coin = "RVN"
)

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)

// ParseCoin normalizes a coin label such as "btc".
func ParseCoin(s string) (Coin, error) {
	c := Coin(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case BTC, LTC, RVN:
		return c, nil
	default:
		return "", fmt.Errorf("unknown coin %q", s)
	}
}

// ChainParams returns the btcd parameters for a bitcoin network. Only BTC is backed by chaincfg.
func ChainParams(coin Coin, network Network) (*chaincfg.Params, error) {
	if coin != BTC {
		return nil, fmt.Errorf("no chain params for coin %s", coin)
	}
	switch network {
	case Mainnet:
		return &chaincfg.MainNetParams, nil
	case Testnet:
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	case Signet:
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}
