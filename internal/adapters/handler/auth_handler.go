package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/metrics"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/middleware"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/services"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/session"
)

// callbackCookieName carries the normalized post-login destination across
// the OAuth round trip.
const callbackCookieName = "login_callback"

type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: auth, sessionTTL: sessionTTL}
}

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in - Sunday School</title></head>
<body>
<main>
  <h1>Sunday School Teacher Portal</h1>
  <p>Sign in with your Google account. New accounts wait for admin approval.</p>
  <a href="{{.SignInURL}}">Sign in with Google</a>
</main>
</body>
</html>
`))

// Login renders the sign-in page. The gate has already bounced signed-in
// callers away from here.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	callback := middleware.NormalizeCallbackURL(r.URL.Query()["callback_url"])
	signInURL := "/auth/google/login?" + url.Values{"callback_url": {callback}}.Encode()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, struct{ SignInURL string }{SignInURL: signInURL}); err != nil {
		log.Printf("auth: failed to render login page: %v", err)
	}
}

// GoogleLogin starts the OAuth handshake.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := h.authService.GenerateState(r.Context())
	if err != nil {
		log.Printf("auth: failed to generate oauth state: %v", err)
		http.Error(w, "sign-in unavailable", http.StatusServiceUnavailable)
		return
	}

	callback := middleware.NormalizeCallbackURL(r.URL.Query()["callback_url"])
	http.SetCookie(w, &http.Cookie{
		Name:     callbackCookieName,
		Value:    callback,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.authService.GetAuthURL(state), http.StatusFound)
}

// GoogleCallback finishes the handshake: consume the state, exchange the
// code, set the session cookie and return the caller to their original
// destination.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.authService.ValidateState(r.Context(), r.URL.Query().Get("state")); err != nil {
		if errors.Is(err, services.ErrInvalidState) {
			metrics.SignIns.WithLabelValues("invalid_state").Inc()
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		log.Printf("auth: state validation failed: %v", err)
		http.Error(w, "sign-in unavailable", http.StatusServiceUnavailable)
		return
	}

	token, err := h.authService.Authenticate(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Printf("auth: authentication failed: %v", err)
		metrics.SignIns.WithLabelValues("failed").Inc()
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	metrics.SignIns.WithLabelValues("success").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	callback := "/"
	if c, err := r.Cookie(callbackCookieName); err == nil {
		callback = middleware.NormalizeCallbackURL([]string{c.Value})
		http.SetCookie(w, &http.Cookie{Name: callbackCookieName, Path: "/", MaxAge: -1})
	}

	http.Redirect(w, r, callback, http.StatusFound)
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side session to tear down.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
