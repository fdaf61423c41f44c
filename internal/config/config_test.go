package config

import (
	"reflect"
	"testing"
)

func TestParseAdminEmails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single", raw: "admin@church.org", want: []string{"admin@church.org"}},
		{name: "mixed case and whitespace", raw: " Admin@Church.org , lead@church.org ", want: []string{"admin@church.org", "lead@church.org"}},
		{name: "stray commas", raw: ",admin@church.org,,", want: []string{"admin@church.org"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAdminEmails(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAdminEmails(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsAdminEmail(t *testing.T) {
	allowlist := ParseAdminEmails("admin@church.org,lead@church.org")

	tests := []struct {
		email string
		want  bool
	}{
		{email: "admin@church.org", want: true},
		{email: "Admin@Church.ORG", want: true},
		{email: " lead@church.org ", want: true},
		{email: "teacher@church.org", want: false},
		{email: "", want: false},
	}

	for _, tt := range tests {
		if got := IsAdminEmail(tt.email, allowlist); got != tt.want {
			t.Errorf("IsAdminEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsAdminEmail_EmptyAllowlist(t *testing.T) {
	if IsAdminEmail("admin@church.org", nil) {
		t.Error("empty allowlist must not match anything")
	}
}
