package handler

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/metrics"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/middleware"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/services"
)

const signupPageCacheTTL = time.Minute

// SignupHandler is the admin signup-management surface. The access gate
// already keeps non-admins out of /signup-management; the handler checks
// again so the page is safe even if it is ever wired up without the gate.
type SignupHandler struct {
	approvalService ports.ApprovalService
	pageCache       ports.PageCache
}

func NewSignupHandler(approvalService ports.ApprovalService, pageCache ports.PageCache) *SignupHandler {
	return &SignupHandler{
		approvalService: approvalService,
		pageCache:       pageCache,
	}
}

var signupTemplate = template.Must(template.New("signup").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Signup Management - Sunday School</title></head>
<body>
<main>
  <section>
    <h1>Signup Management</h1>
    <p>Approve or reject new signup requests.</p>
    {{if not .Pending}}<p>No accounts are waiting for approval.</p>{{end}}
    {{range .Pending}}
    <article>
      <p><strong>{{if .Name}}{{.Name}}{{else}}(no name){{end}}</strong> &lt;{{.Email}}&gt;</p>
      <p>Requested: {{.CreatedAt.Format "Jan 2, 2006 15:04"}}</p>
      <form method="post" action="/signup-management/approve">
        <input type="hidden" name="teacher_id" value="{{.ID}}">
        <button type="submit">Approve</button>
      </form>
      <form method="post" action="/signup-management/reject">
        <input type="hidden" name="teacher_id" value="{{.ID}}">
        <button type="submit">Reject</button>
      </form>
    </article>
    {{end}}
  </section>
  <section>
    <h2>Processed Signups</h2>
    {{if not .Processed}}<p>No accounts have been processed yet.</p>{{end}}
    {{range .Processed}}
    <article>
      <p><strong>{{if .Name}}{{.Name}}{{else}}(no name){{end}}</strong> &lt;{{.Email}}&gt;</p>
      <p>Processed: {{.UpdatedAt.Format "Jan 2, 2006 15:04"}} &mdash; {{.ApprovalStatus}}</p>
    </article>
    {{end}}
  </section>
  <p><a href="/">Back to home</a></p>
</main>
</body>
</html>
`))

type signupPageData struct {
	Pending   []domain.Teacher
	Processed []domain.Teacher
}

// Manage renders the approval lists. Renders are cached briefly; the
// approval service invalidates the cache on every transition, so the page
// is stale at most until then.
func (h *SignupHandler) Manage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if cached, err := h.pageCache.Get(r.Context(), services.SignupPageCacheKey); err == nil {
		w.Write([]byte(cached))
		return
	}

	pending, err := h.approvalService.ListPending(r.Context())
	if err != nil {
		log.Printf("signup: failed to list pending signups: %v", err)
		http.Error(w, "failed to load signups", http.StatusInternalServerError)
		return
	}
	processed, err := h.approvalService.ListProcessed(r.Context())
	if err != nil {
		log.Printf("signup: failed to list processed signups: %v", err)
		http.Error(w, "failed to load signups", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := signupTemplate.Execute(&buf, signupPageData{Pending: pending, Processed: processed}); err != nil {
		log.Printf("signup: failed to render page: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	if err := h.pageCache.Set(r.Context(), services.SignupPageCacheKey, buf.String(), signupPageCacheTTL); err != nil {
		log.Printf("signup: failed to cache page: %v", err)
	}
	w.Write(buf.Bytes())
}

// Approve transitions one pending signup to APPROVED.
func (h *SignupHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusApproved)
}

// Reject transitions one pending signup to REJECTED.
func (h *SignupHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.StatusRejected)
}

func (h *SignupHandler) transition(w http.ResponseWriter, r *http.Request, status domain.ApprovalStatus) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, r) {
		return
	}

	// Missing or malformed ids are a deliberate no-op (double submits and
	// stale forms), so the redirect below happens either way.
	id := r.FormValue("teacher_id")
	if err := h.approvalService.SetApprovalStatus(r.Context(), id, status); err != nil {
		log.Printf("signup: failed to set status %s for %q: %v", status, id, err)
		http.Error(w, "failed to update signup", http.StatusInternalServerError)
		return
	}
	metrics.ApprovalTransitions.WithLabelValues(string(status)).Inc()

	http.Redirect(w, r, "/signup-management", http.StatusSeeOther)
}

func (h *SignupHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !middleware.ClaimsFromContext(r.Context()).IsAdmin() {
		http.Redirect(w, r, "/", http.StatusFound)
		return false
	}
	return true
}
