// Package metrics defines and registers all custom Prometheus metrics for
// the hotel-ops API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotelops"

// LoginsTotal counts login attempts by flow and result.
// Labels:
//   - flow: "staff", "guest", or "password_setup"
//   - result: "authenticated", "needs_password_setup", or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// GateDenialsTotal counts authorization gate denials.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of requests denied by the authorization gate.",
	},
	[]string{"reason"},
)

// TicketsCreatedTotal counts newly opened service requests.
// Label:
//   - category: the ticket category supplied by the requester
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of service-request tickets created, by category.",
	},
	[]string{"category"},
)

// MailSentTotal counts outbound email deliveries.
// Labels:
//   - kind: the mail template kind (e.g. "password_setup")
//   - result: "sent", "skipped" (dedup hit), or "error"
var MailSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sent_total",
		Help:      "Total number of outbound emails, by kind and result.",
	},
	[]string{"kind", "result"},
)

// MailQueueDepth tracks the number of jobs waiting in each mail worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mail jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
