package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/session"
)

// memTeacherRepo mirrors the store's upsert semantics in memory: one
// record per email, allowlisted emails re-promoted on every sign-in.
type memTeacherRepo struct {
	byEmail map[string]*domain.Teacher
}

func newMemTeacherRepo() *memTeacherRepo {
	return &memTeacherRepo{byEmail: make(map[string]*domain.Teacher)}
}

func (m *memTeacherRepo) FindByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	t, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrTeacherNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *memTeacherRepo) UpsertOnSignIn(ctx context.Context, email, name string, admin bool) (*domain.Teacher, error) {
	now := time.Now()
	if t, ok := m.byEmail[email]; ok {
		if name != "" {
			t.Name = name
		}
		if admin {
			t.Role = domain.RoleAdmin
			t.ApprovalStatus = domain.StatusApproved
		}
		t.UpdatedAt = now
		copied := *t
		return &copied, nil
	}

	t := &domain.Teacher{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		Role:           domain.RoleTeacher,
		ApprovalStatus: domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if admin {
		t.Role = domain.RoleAdmin
		t.ApprovalStatus = domain.StatusApproved
	}
	m.byEmail[email] = t
	copied := *t
	return &copied, nil
}

func (m *memTeacherRepo) ListPending(ctx context.Context) ([]domain.Teacher, error) {
	return nil, nil
}

func (m *memTeacherRepo) ListProcessed(ctx context.Context) ([]domain.Teacher, error) {
	return nil, nil
}

func (m *memTeacherRepo) SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	return nil
}

func newTestAuthService(repo *memTeacherRepo, adminEmails []string) *GoogleOAuthService {
	return NewGoogleOAuthService(
		"client-id", "client-secret", "http://localhost/auth/google/callback",
		"test-secret", time.Hour,
		adminEmails,
		repo,
		nil, // state store not used by CompleteSignIn
	)
}

func TestCompleteSignIn_FirstSignInIsPendingTeacher(t *testing.T) {
	repo := newMemTeacherRepo()
	svc := newTestAuthService(repo, []string{"admin@church.org"})

	token, err := svc.CompleteSignIn(context.Background(), "new.teacher@gmail.com", "New Teacher")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.byEmail["new.teacher@gmail.com"]
	if stored == nil {
		t.Fatal("record was not created")
	}
	if stored.Role != domain.RoleTeacher {
		t.Errorf("expected role TEACHER, got %s", stored.Role)
	}
	if stored.ApprovalStatus != domain.StatusPending {
		t.Errorf("expected status PENDING, got %s", stored.ApprovalStatus)
	}

	claims, err := session.Parse("test-secret", token)
	if err != nil {
		t.Fatalf("token should parse: %v", err)
	}
	if claims.ApprovalStatus != domain.StatusPending {
		t.Errorf("claims should carry PENDING, got %s", claims.ApprovalStatus)
	}
}

func TestCompleteSignIn_AllowlistedEmailIsApprovedAdmin(t *testing.T) {
	repo := newMemTeacherRepo()
	svc := newTestAuthService(repo, []string{"admin@church.org"})

	token, err := svc.CompleteSignIn(context.Background(), "Admin@Church.org", "The Admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Email is lower-cased before it reaches the store.
	stored := repo.byEmail["admin@church.org"]
	if stored == nil {
		t.Fatal("record was not created under the normalized email")
	}
	if stored.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", stored.Role)
	}
	if stored.ApprovalStatus != domain.StatusApproved {
		t.Errorf("expected status APPROVED, got %s", stored.ApprovalStatus)
	}

	claims, err := session.Parse("test-secret", token)
	if err != nil {
		t.Fatalf("token should parse: %v", err)
	}
	if !claims.IsAdmin() || !claims.Approved() {
		t.Errorf("claims should be approved admin, got %+v", claims)
	}
}

func TestCompleteSignIn_SecondSignInDoesNotDuplicate(t *testing.T) {
	repo := newMemTeacherRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.CompleteSignIn(context.Background(), "teacher@gmail.com", "First Name"); err != nil {
		t.Fatalf("first sign-in failed: %v", err)
	}
	firstID := repo.byEmail["teacher@gmail.com"].ID

	if _, err := svc.CompleteSignIn(context.Background(), "Teacher@gmail.com", "Updated Name"); err != nil {
		t.Fatalf("second sign-in failed: %v", err)
	}

	if len(repo.byEmail) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.byEmail))
	}
	stored := repo.byEmail["teacher@gmail.com"]
	if stored.ID != firstID {
		t.Error("second sign-in must not replace the record")
	}
	if stored.Name != "Updated Name" {
		t.Errorf("expected name refreshed on sign-in, got %q", stored.Name)
	}
}

func TestCompleteSignIn_EmptyEmail(t *testing.T) {
	svc := newTestAuthService(newMemTeacherRepo(), nil)

	if _, err := svc.CompleteSignIn(context.Background(), "   ", "Nobody"); err == nil {
		t.Fatal("expected error for empty email")
	}
}
