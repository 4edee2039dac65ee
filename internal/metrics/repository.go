package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pebble_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "coin", "network", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pebble_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "coin", "network", "status"})
	repositoryBytesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "pebble_repository",
		Name:      "bytes_written_total",
		Help:      "Bytes committed to the store, keys and values included.",
	}, []string{"coin", "network"})
)

// Repository tracks metrics for pebble repository operations.
type Repository struct {
	coin    model.Coin
	network model.Network
}

// NewRepository creates a Repository metrics collector.
func NewRepository(coin model.Coin, network model.Network) *Repository {
	coin, network = labels(coin, network)
	return &Repository{coin: coin, network: network}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	s := status(err)
	repositoryRequestsTotal.WithLabelValues(operation, string(m.coin), string(m.network), s).Inc()
	repositoryRequestDuration.WithLabelValues(operation, string(m.coin), string(m.network), s).
		Observe(time.Since(started).Seconds())
}

// ObserveBytesWritten adds the size of a committed batch.
func (m Repository) ObserveBytesWritten(n int) {
	repositoryBytesWritten.WithLabelValues(string(m.coin), string(m.network)).Add(float64(n))
}
