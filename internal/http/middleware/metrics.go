package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	GamesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "games_recorded_total",
			Help: "Game results accepted by the result endpoint",
		},
		[]string{"game_type", "result"},
	)
	GateRedirects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_gate_redirects_total",
			Help: "Page requests redirected to sign-in by the access gate",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(GamesRecorded)
	prometheus.MustRegister(GateRedirects)
}
