package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
)

// SignupPageCacheKey is the cached render of the signup-management page.
const SignupPageCacheKey = "page:signup-management"

// SignupApprovalService runs the admin approval workflow over pending
// teacher records.
type SignupApprovalService struct {
	teacherRepo ports.TeacherRepository
	pageCache   ports.PageCache
}

func NewSignupApprovalService(teacherRepo ports.TeacherRepository, pageCache ports.PageCache) *SignupApprovalService {
	return &SignupApprovalService{
		teacherRepo: teacherRepo,
		pageCache:   pageCache,
	}
}

func (s *SignupApprovalService) ListPending(ctx context.Context) ([]domain.Teacher, error) {
	return s.teacherRepo.ListPending(ctx)
}

func (s *SignupApprovalService) ListProcessed(ctx context.Context) ([]domain.Teacher, error) {
	return s.teacherRepo.ListProcessed(ctx)
}

// SetApprovalStatus moves one PENDING record to APPROVED or REJECTED.
// Malformed input (empty id, non-UUID id, status outside the two terminal
// states) is a no-op, not an error; store failures still propagate.
func (s *SignupApprovalService) SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil
	}

	if err := s.teacherRepo.SetApprovalStatus(ctx, id, status); err != nil {
		return err
	}

	// The admin page caches its render; stale entries would keep showing
	// the old lists after a transition.
	if err := s.pageCache.Invalidate(ctx, SignupPageCacheKey); err != nil {
		log.Printf("approval: failed to invalidate page cache: %v", err)
	}
	return nil
}
