package controller

import (
	"github.com/mww/dreamsquad/model"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ledgerOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dreamsquad",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Count of roster draft and remove operations by outcome",
	}, []string{"op", "outcome"})

	leagueJoins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dreamsquad",
		Subsystem: "leagues",
		Name:      "joins_total",
		Help:      "Count of league join attempts by outcome",
	}, []string{"outcome"})

	scoreUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dreamsquad",
		Subsystem: "scoring",
		Name:      "updates_total",
		Help:      "Count of score updates by outcome",
	}, []string{"outcome"})

	syncRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dreamsquad",
		Subsystem: "catalog",
		Name:      "syncs_total",
		Help:      "Count of player catalog syncs by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(ledgerOps, leagueJoins, scoreUpdates, syncRuns)
}

// outcome labels a result with its error kind, "ok" on success.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return model.KindOf(err).String()
}
