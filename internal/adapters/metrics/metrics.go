package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GateDecisions counts access-gate outcomes by label: bypass, pass,
// legacy_redirect, login_redirect, status_redirect, home_redirect.
var GateDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "access_gate_decisions_total",
		Help: "Access gate decisions by outcome.",
	},
	[]string{"outcome"},
)

// SignIns counts completed OAuth callbacks by result: success, invalid_state,
// failed.
var SignIns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signins_total",
		Help: "Google sign-in attempts by result.",
	},
	[]string{"result"},
)

// ApprovalTransitions counts signup approval decisions by terminal status.
var ApprovalTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "signup_approval_transitions_total",
		Help: "Signup approval transitions by resulting status.",
	},
	[]string{"status"},
)
