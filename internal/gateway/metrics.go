package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	GatewayConnectAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_connect_attempts_total",
			Help: "Total number of startup connectivity attempts per upstream",
		},
		[]string{"service", "result"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of outbound gateway requests",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "method", "result"},
	)
)

// Observe records one outbound call and passes err through.
func Observe(service, method string, start time.Time, err error) error {
	GatewayRequestDuration.WithLabelValues(service, method, Result(err)).Observe(time.Since(start).Seconds())
	return err
}

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
