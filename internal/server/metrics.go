package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hfchat_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "route", "status"})

	// exchangesTotal counts chat exchanges by outcome: ok, error or empty.
	exchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hfchat_exchanges_total",
		Help: "Chat exchanges by model and outcome.",
	}, []string{"model", "outcome"})

	exchangeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hfchat_exchange_duration_seconds",
		Help:    "Time spent waiting on the inference endpoint.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"model"})

	sessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hfchat_sessions",
		Help: "Number of known sessions.",
	})
)
