// Package metrics defines and registers all custom Prometheus metrics
// for the booking API. It is the single source of truth for metric
// names, labels, and help strings. Registration happens at import time
// through promauto; HTTP-level series come from the echoprometheus
// middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts successful logins.
// Label:
//   - method: "password", "google", "reset" (implicit login after a
//     password reset) or "reactivate"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins, by method.",
	},
	[]string{"method"},
)

// PasswordResetRequestsTotal counts accepted forgot-password requests.
var PasswordResetRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_requests_total",
		Help:      "Total number of password reset codes issued.",
	},
)

// PasswordResetConfirmsTotal counts reset-code verification outcomes.
// Label:
//   - result: "ok", "invalid", "attempts_exceeded"
var PasswordResetConfirmsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_confirms_total",
		Help:      "Total number of reset code verifications, by result.",
	},
	[]string{"result"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts successfully created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// BookingsCancelledTotal counts cancelled bookings.
var BookingsCancelledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Total number of bookings cancelled.",
	},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheLookupsTotal counts list-cache lookups.
// Labels:
//   - resource: the cached resource (e.g. "trips")
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of list cache lookups, by resource and result.",
	},
	[]string{"resource", "result"},
)

// ── FAQ metrics ───────────────────────────────────────────────────────────────

// FAQQuestionsTotal counts chatbot questions.
// Label:
//   - matched: "true" when an FAQ entry scored above the threshold
var FAQQuestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "faq_questions_total",
		Help:      "Total number of FAQ questions asked, by match outcome.",
	},
	[]string{"matched"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailDispatchTotal counts mail delivery outcomes.
// Labels:
//   - template: the mail template (welcome, reset_code, ...)
//   - result: "ok", "error" or "dropped"
var MailDispatchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dispatch_total",
		Help:      "Total number of mail dispatch attempts, by template and result.",
	},
	[]string{"template", "result"},
)
