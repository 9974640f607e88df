// Package metrics defines and registers all custom Prometheus metrics for the
// flaska API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint serves that registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flaska"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRedeemedTotal counts confirmation-token redemptions.
// Labels:
//   - purpose: "confirm_user", "reset_password", "change_email"
//   - result:  "success" or "invalid"
var TokensRedeemedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_redeemed_total",
		Help:      "Total number of token redemption attempts, by purpose and result.",
	},
	[]string{"purpose", "result"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// BlogsCreatedTotal counts new blog posts.
var BlogsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blogs_created_total",
		Help:      "Total number of blogs published.",
	},
)

// CommentsCreatedTotal counts new comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments posted.",
	},
)

// FollowsTotal counts follow-graph mutations that changed an edge.
// Label:
//   - action: "follow" or "unfollow"
var FollowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follows_total",
		Help:      "Total number of follow and unfollow operations applied.",
	},
	[]string{"action"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// EmailsSentTotal counts outbound email deliveries.
// Labels:
//   - template: mail template name
//   - result:   "sent" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of outbound emails, by template and result.",
	},
	[]string{"template", "result"},
)

// MailQueueDepth tracks the number of emails waiting in each dispatcher
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
