package outbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dropReasonFull   = "full"
	dropReasonClosed = "closed"
)

var (
	OutboxDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_dropped_total",
			Help: "Total number of notification batches dropped before dispatch",
		},
		[]string{"reason"},
	)

	OutboxQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outbox_queue_length",
			Help: "Number of batches waiting for a worker",
		},
	)
)
