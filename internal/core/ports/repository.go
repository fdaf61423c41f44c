package ports

import (
	"context"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

type TeacherRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Teacher, error)

	// UpsertOnSignIn creates the record on first sign-in (PENDING/TEACHER,
	// or APPROVED/ADMIN when admin is true) and on later sign-ins refreshes
	// the name and, for allowlisted admins, re-promotes role and status.
	// Exactly one record per email.
	UpsertOnSignIn(ctx context.Context, email, name string, admin bool) (*domain.Teacher, error)

	// ListPending returns PENDING records, newest first by creation time.
	ListPending(ctx context.Context) ([]domain.Teacher, error)

	// ListProcessed returns APPROVED and REJECTED records, newest first by
	// last update time.
	ListProcessed(ctx context.Context) ([]domain.Teacher, error)

	// SetApprovalStatus transitions one PENDING record to APPROVED or
	// REJECTED. An unknown id or an already-processed record is a no-op.
	SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error
}
