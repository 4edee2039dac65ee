package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-store/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchMissingTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "fetch_missing_total",
		Help:      "Count of attempts to fetch missing heights.",
	}, []string{"coin", "network", "status"})

	ingesterFetchMissingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "fetch_missing_duration_seconds",
		Help:      "Duration of fetching missing heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_total",
		Help:      "Count of batches processed.",
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of fetching and converting a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterEncodedBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "encoded_block_bytes",
		Help:      "Size of encoded stored blocks.",
		Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
	}, []string{"coin", "network"})

	ingesterInputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "inputs_total",
		Help:      "Count of stored inputs by resolution kind.",
	}, []string{"coin", "network", "kind"})

	ingesterTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "ingester",
		Name:      "tip_height",
		Help:      "Highest height persisted by the ingester.",
	}, []string{"coin", "network"})
)

// Ingester tracks metrics for the ingestion pipeline.
type Ingester struct {
	coin    model.Coin
	network model.Network
}

// NewIngester constructs an Ingester with defaults.
func NewIngester(coin model.Coin, network model.Network) *Ingester {
	coin, network = labels(coin, network)
	return &Ingester{coin: coin, network: network}
}

// ObserveFetchMissing records a fetch attempt outcome and duration.
func (m Ingester) ObserveFetchMissing(err error, started time.Time) {
	s := status(err)
	ingesterFetchMissingTotal.WithLabelValues(string(m.coin), string(m.network), s).Inc()
	ingesterFetchMissingDuration.WithLabelValues(string(m.coin), string(m.network), s).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of heights.
func (m Ingester) ObserveProcessBatch(err error, heights int, started time.Time) {
	s := status(err)
	ingesterProcessBatchTotal.WithLabelValues(string(m.coin), string(m.network), s).Inc()
	ingesterProcessBatchDuration.WithLabelValues(string(m.coin), string(m.network), s).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(string(m.coin), string(m.network)).
		Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m Ingester) ObserveProcessHeight(err error, _ uint32, started time.Time) {
	ingesterProcessHeightDuration.WithLabelValues(string(m.coin), string(m.network), status(err)).
		Observe(time.Since(started).Seconds())
}

// ObserveEncodedBytes records the encoded size of one stored block.
func (m Ingester) ObserveEncodedBytes(n int) {
	ingesterEncodedBytes.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(n))
}

// ObserveInputs adds resolved and unresolved input counts.
func (m Ingester) ObserveInputs(resolved, unresolved int) {
	ingesterInputsTotal.WithLabelValues(string(m.coin), string(m.network), "resolved").Add(float64(resolved))
	ingesterInputsTotal.WithLabelValues(string(m.coin), string(m.network), "unresolved").Add(float64(unresolved))
}

// SetTip publishes the persisted tip height.
func (m Ingester) SetTip(height uint32) {
	ingesterTipHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}
