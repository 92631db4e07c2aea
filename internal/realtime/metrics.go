package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "realtime_clients",
			Help: "Number of connected dashboard websocket clients",
		},
	)

	RealtimeSlowClientsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "realtime_slow_clients_total",
			Help: "Total number of websocket clients disconnected for not keeping up",
		},
	)
)
