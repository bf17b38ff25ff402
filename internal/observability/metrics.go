package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artnet",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "artnet",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artnet",
			Subsystem: "listener",
			Name:      "frames_total",
			Help:      "Decoded Art-Net frames by opcode.",
		},
		[]string{"opcode"},
	)
	decodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "artnet",
			Subsystem: "listener",
			Name:      "decode_errors_total",
			Help:      "Datagrams rejected by the decoder, by reason.",
		},
		[]string{"reason"},
	)
	datagramBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "artnet",
			Subsystem: "listener",
			Name:      "datagram_bytes",
			Help:      "Size of received datagrams in bytes.",
			Buckets:   []float64{12, 14, 19, 64, 239, 530, 1024},
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, framesDecoded, decodeErrors, datagramBytes)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordDatagram counts one received datagram of n bytes.
func RecordDatagram(n int) {
	RegisterMetrics()
	datagramBytes.Observe(float64(n))
}

func RecordFrame(opcode string) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(opcode).Inc()
}

func RecordDecodeError(reason string) {
	RegisterMetrics()
	decodeErrors.WithLabelValues(reason).Inc()
}
