// Package metrics defines and registers all custom Prometheus metrics for the
// Gigsly client and its development backend. It is the single source of truth
// for metric names, labels and help strings.
//
// Collectors register with the default registry on import (promauto).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gigsly"

// ── Client session metrics ───────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - to: resulting state ("authenticated", "anonymous", "hydrating")
//   - reason: "hydrated", "login", "signup", "refreshed", "expired", "logout", "evicted"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"to", "reason"},
)

// SessionEventsDroppedTotal counts session events not delivered because a
// subscriber's buffer was full.
var SessionEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "events_dropped_total",
		Help:      "Total number of session events dropped for slow subscribers.",
	},
)

// ── Gateway metrics ──────────────────────────────────────────────────────────

// GatewayRequestDuration measures backend round trips made by the client.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "error" on transport failure
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests issued by the API gateway client.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// GatewayEvictionsTotal counts 401 responses that cleared the session store.
var GatewayEvictionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "gateway",
		Name:      "evictions_total",
		Help:      "Total number of 401 responses that evicted the stored session.",
	},
)

// ── Dev backend metrics ──────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and signup attempts on the dev backend.
// Labels:
//   - operation: "login" or "signup"
//   - result: "success" or a short failure reason
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "devserver",
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// TasksCreatedTotal counts posted tasks, by priority.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "devserver",
		Name:      "tasks_created_total",
		Help:      "Total number of tasks posted, by priority.",
	},
	[]string{"priority"},
)

// ProposalsTotal counts proposal lifecycle events.
// Label:
//   - status: "PENDING" on submit, or the status applied by the client
var ProposalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "devserver",
		Name:      "proposals_total",
		Help:      "Total number of proposal submissions and decisions, by status.",
	},
	[]string{"status"},
)

// RBACDenialsTotal counts requests rejected by the role gate.
// Label:
//   - action: the gated action name
var RBACDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "devserver",
		Name:      "rbac_denials_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
	[]string{"action"},
)
