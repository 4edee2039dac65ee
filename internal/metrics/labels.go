package metrics

import "github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"

func labels(coin model.Coin, network model.Network) (model.Coin, model.Network) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return coin, network
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
