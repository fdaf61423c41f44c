package services

import (
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

// MenuItem is one navigation entry. URL is either an internal path or an
// absolute external URL.
type MenuItem struct {
	Label string
	Icon  string
	URL   string
}

var commonMenuItems = []MenuItem{
	{Label: "Attendance", Icon: "calendar-check", URL: "/attendance"},
	{Label: "Students", Icon: "user-graduate", URL: "/students"},
	{Label: "Teachers", Icon: "address-book", URL: "/teachers"},
	{Label: "Annual Calendar", Icon: "calendar-days", URL: "https://calendar.google.com/calendar/u/0/r"},
	{Label: "Meeting Notes", Icon: "clipboard-list", URL: "https://www.notion.so/17a4a84007c58006857be3ab9ee8dc54?source=copy_link"},
	{Label: "Finance", Icon: "sack-dollar", URL: "https://docs.google.com/spreadsheets/d/1Ya0NdpwoVj9i7eYvJHZ8ZYx6HZtwY2IRdgemHykMI-g/edit?usp=sharing"},
	{Label: "Resources", Icon: "folder-open", URL: "https://www.notion.so/17a4a84007c5808abeefd585825cd6c2?source=copy_link"},
	{Label: "Recreation", Icon: "gamepad", URL: "/recreation"},
}

var adminOnlyMenuItem = MenuItem{
	Label: "Signup Management",
	Icon:  "users-gear",
	URL:   "/signup-management",
}

// MenuForRole returns the navigation entries visible to a role. ADMIN gets
// the common list plus the signup-management entry appended; everyone else,
// including unauthenticated callers, gets the common list. The returned
// slice is a copy.
func MenuForRole(role domain.Role) []MenuItem {
	items := make([]MenuItem, 0, len(commonMenuItems)+1)
	items = append(items, commonMenuItems...)
	if role == domain.RoleAdmin {
		items = append(items, adminOnlyMenuItem)
	}
	return items
}
