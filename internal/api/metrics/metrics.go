// Package metrics defines the business Prometheus metrics of the prize bond
// API. HTTP request metrics come from echoprometheus; this package only
// holds what the middleware cannot see.
//
// Metrics are registered with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "prizebond"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (bad credentials and store errors alike)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// CardsCreatedTotal counts cards created. Idempotent replays are not counted.
var CardsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cards_created_total",
		Help:      "Total number of cards created.",
	},
)

// BondOperationsTotal counts successful bond mutations.
// Label:
//   - op: "add", "update", "delete"
var BondOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bond_operations_total",
		Help:      "Total number of bond mutations, by operation.",
	},
	[]string{"op"},
)

// BondStatusTotal counts status values written by bond updates.
// Label:
//   - status: "hold", "win", "sell"
var BondStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bond_status_updates_total",
		Help:      "Total number of bond updates, by resulting status.",
	},
	[]string{"status"},
)

// Result maps an error to a result label value.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
