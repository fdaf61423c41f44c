package handler

import (
	"html/template"
	"log"
	"net/http"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/adapters/middleware"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/services"
)

// PageHandler serves the informational pages. Content is deliberately
// thin; the interesting part is the role-resolved navigation.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Title}} - Sunday School</title></head>
<body>
<nav>
  <ul>
  {{range .Menu}}<li><a href="{{.URL}}" data-icon="{{.Icon}}">{{.Label}}</a></li>
  {{end}}</ul>
  {{if .SignedIn}}<form method="post" action="/logout"><button type="submit">Sign out</button></form>
  {{else}}<a href="/login">Sign in</a>{{end}}
</nav>
<main>
  <h1>{{.Title}}</h1>
  <p>{{.Message}}</p>
</main>
</body>
</html>
`))

type pageData struct {
	Title    string
	Message  string
	Menu     []services.MenuItem
	SignedIn bool
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, title, message string) {
	claims := middleware.ClaimsFromContext(r.Context())

	var role domain.Role
	if claims != nil {
		role = claims.Role
	}

	data := pageData{
		Title:    title,
		Message:  message,
		Menu:     services.MenuForRole(role),
		SignedIn: claims != nil,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("pages: failed to render %q: %v", title, err)
	}
}

// Home handles "/"; the catch-all pattern means everything unrouted lands
// here too, so unknown paths get a 404 instead of the home page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, "Home", "Welcome to the Sunday School teacher portal.")
}

func (h *PageHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Approval Pending", "Your signup is waiting for an administrator to approve it. Check back later.")
}

func (h *PageHandler) Rejected(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Signup Rejected", "Your signup was not approved. Contact an administrator if you believe this is a mistake.")
}

func (h *PageHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Attendance", "Attendance tracking is coming soon.")
}

func (h *PageHandler) Students(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Students", "The student roster is coming soon.")
}

func (h *PageHandler) Teachers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Teachers", "Teacher information is coming soon.")
}

func (h *PageHandler) Recreation(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Recreation", "Recreation ideas are coming soon.")
}
