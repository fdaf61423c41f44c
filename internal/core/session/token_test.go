package session

import (
	"testing"
	"time"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

const testSecret = "unit-test-secret"

func mint(t *testing.T, teacher *domain.Teacher, ttl time.Duration) string {
	t.Helper()
	token, err := NewToken(testSecret, teacher, ttl)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func TestParse_RoundTrip(t *testing.T) {
	token := mint(t, &domain.Teacher{
		ID:             "teacher-1",
		Role:           domain.RoleAdmin,
		ApprovalStatus: domain.StatusApproved,
	}, time.Hour)

	claims, err := Parse(testSecret, token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.TeacherID != "teacher-1" {
		t.Errorf("expected teacher id teacher-1, got %q", claims.TeacherID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", claims.Role)
	}
	if claims.ApprovalStatus != domain.StatusApproved {
		t.Errorf("expected status APPROVED, got %s", claims.ApprovalStatus)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token := mint(t, &domain.Teacher{ID: "teacher-1", Role: domain.RoleTeacher, ApprovalStatus: domain.StatusPending}, time.Hour)

	if _, err := Parse("other-secret", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	token := mint(t, &domain.Teacher{ID: "teacher-1", Role: domain.RoleTeacher, ApprovalStatus: domain.StatusApproved}, -time.Hour)

	if _, err := Parse(testSecret, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse(testSecret, "not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestParse_NormalizesUnknownClaims(t *testing.T) {
	token := mint(t, &domain.Teacher{
		ID:             "teacher-1",
		Role:           domain.Role("SUPERUSER"),
		ApprovalStatus: domain.ApprovalStatus("MAYBE"),
	}, time.Hour)

	claims, err := Parse(testSecret, token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.Role != domain.RoleTeacher {
		t.Errorf("unknown role should normalize to TEACHER, got %s", claims.Role)
	}
	if claims.ApprovalStatus != domain.StatusPending {
		t.Errorf("unknown status should normalize to PENDING, got %s", claims.ApprovalStatus)
	}
}
