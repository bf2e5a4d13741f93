// Package metrics defines and registers all custom Prometheus metrics for the
// task board service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every collector, including the HTTP ones registered by
// the router.
const Namespace = "taskboard"

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts board access decisions made by the gate.
// Labels:
//   - path: entry point used ("board", "list", "card")
//   - outcome: "granted", "denied", "invalid", "not_found" or "error"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of board access decisions, by entry point and outcome.",
	},
	[]string{"path", "outcome"},
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersTotal counts per-recipient reminder outcomes across sweeps.
// Label:
//   - result: "sent", "skipped" (already reminded today) or "failed"
var RemindersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reminders_total",
		Help:      "Total number of due-date reminder outcomes, by result.",
	},
	[]string{"result"},
)

// ReminderSweepsTotal counts sweeps by trigger ("daily", "interval", "manual")
// and status ("ok", "error", "overlap").
var ReminderSweepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reminder_sweeps_total",
		Help:      "Total number of reminder sweeps, by trigger and status.",
	},
	[]string{"trigger", "status"},
)

// ReminderSweepDuration measures how long a full sweep takes.
var ReminderSweepDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "reminder_sweep_duration_seconds",
		Help:      "Duration of due-date reminder sweeps.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsPublishedTotal counts real-time publishes.
// Label:
//   - result: "published", "failed" or "dropped" (queue full)
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of real-time notification publishes, by result.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
