package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/metrics"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/session"
)

type contextKey string

const claimsKey contextKey = "sessionClaims"

var publicPaths = []string{"/", "/login"}

// bypassPrefixes are checked before any token work: static assets, the
// OAuth handshake itself, probes and metrics.
var bypassPrefixes = []string{"/static/", "/auth/", "/health", "/metrics"}

// gateOutcome is what a rule decides. An empty target means pass through.
type gateOutcome struct {
	target string
	status int
	label  string
}

var passOutcome = gateOutcome{label: "pass"}

// gateRule evaluates one step of the policy. Returning ok=false defers to
// the next rule; the first rule that matches wins.
type gateRule func(path, rawQuery string, claims *domain.Claims) (out gateOutcome, ok bool)

// AccessGate is the single choke point every request goes through. It
// never mutates state and never answers with an HTTP error for an auth
// decision; every outcome is pass-through or a redirect.
type AccessGate struct {
	authSecret string
	rules      []gateRule
}

func NewAccessGate(authSecret string) *AccessGate {
	return &AccessGate{
		authSecret: authSecret,
		rules: []gateRule{
			ruleLoginRequired,
			ruleAnonymousPublic,
			ruleUnapprovedToStatusPage,
			ruleApprovedOffStatusPage,
			ruleAdminOnly,
			ruleLoginBounce,
		},
	}
}

func (g *AccessGate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if isBypassPath(path) {
			metrics.GateDecisions.WithLabelValues("bypass").Inc()
			next.ServeHTTP(w, r)
			return
		}

		// Renamed admin feature; the old path redirects for any caller.
		if path == "/operations" || strings.HasPrefix(path, "/operations/") {
			metrics.GateDecisions.WithLabelValues("legacy_redirect").Inc()
			http.Redirect(w, r, "/signup-management", http.StatusPermanentRedirect)
			return
		}

		claims := g.claimsFromRequest(r)

		for _, rule := range g.rules {
			out, ok := rule(path, r.URL.RawQuery, claims)
			if !ok {
				continue
			}
			if out.target == "" {
				break
			}
			metrics.GateDecisions.WithLabelValues(out.label).Inc()
			http.Redirect(w, r, out.target, out.status)
			return
		}

		metrics.GateDecisions.WithLabelValues("pass").Inc()
		if claims != nil {
			r = r.WithContext(WithClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

// claimsFromRequest reads the session cookie and parses it. Any failure,
// including a corrupt or expired token, yields nil: the caller is treated
// exactly like an unauthenticated one.
func (g *AccessGate) claimsFromRequest(r *http.Request) *domain.Claims {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	claims, err := session.Parse(g.authSecret, cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

func ruleLoginRequired(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	if claims == nil && !isPublicPath(path) {
		return gateOutcome{target: loginURLWithCallback(path, rawQuery), status: http.StatusFound, label: "login_redirect"}, true
	}
	return gateOutcome{}, false
}

func ruleAnonymousPublic(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	if claims == nil {
		return passOutcome, true
	}
	return gateOutcome{}, false
}

func ruleUnapprovedToStatusPage(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	statusPath := claims.ApprovalStatus.StatusPath()
	if !claims.Approved() && path != statusPath {
		return gateOutcome{target: statusPath, status: http.StatusFound, label: "status_redirect"}, true
	}
	return gateOutcome{}, false
}

func ruleApprovedOffStatusPage(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	if claims.Approved() && (path == "/pending" || path == "/rejected") {
		return gateOutcome{target: "/", status: http.StatusFound, label: "home_redirect"}, true
	}
	return gateOutcome{}, false
}

func ruleAdminOnly(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	if strings.HasPrefix(path, "/signup-management") && !claims.IsAdmin() {
		return gateOutcome{target: "/", status: http.StatusFound, label: "home_redirect"}, true
	}
	return gateOutcome{}, false
}

func ruleLoginBounce(path, rawQuery string, claims *domain.Claims) (gateOutcome, bool) {
	if path != "/login" {
		return gateOutcome{}, false
	}
	if claims.Approved() {
		return gateOutcome{target: "/", status: http.StatusFound, label: "home_redirect"}, true
	}
	return gateOutcome{target: claims.ApprovalStatus.StatusPath(), status: http.StatusFound, label: "status_redirect"}, true
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

func isBypassPath(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// loginURLWithCallback preserves the originally requested path+query so the
// post-login flow can return the caller there.
func loginURLWithCallback(path, rawQuery string) string {
	requested := path
	if rawQuery != "" {
		requested += "?" + rawQuery
	}
	return "/login?callback_url=" + url.QueryEscape(requested)
}

// NormalizeCallbackURL keeps only same-site relative paths; absolute URLs,
// protocol-relative values and blanks all collapse to "/" so the login flow
// can never be used as an open redirect. With repeated parameters the first
// value wins.
func NormalizeCallbackURL(values []string) string {
	if len(values) == 0 {
		return "/"
	}
	v := values[0]
	if v == "" || !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return "/"
	}
	return v
}

func WithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims the gate attached, or nil for an
// unauthenticated request.
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(claimsKey).(*domain.Claims)
	return claims
}
