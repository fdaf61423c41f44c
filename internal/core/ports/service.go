package ports

import (
	"context"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

type AuthService interface {
	// GenerateState creates and stores a single-use CSRF state for the
	// OAuth handshake.
	GenerateState(ctx context.Context) (string, error)

	// ValidateState consumes a state previously issued by GenerateState.
	ValidateState(ctx context.Context, state string) error

	GetAuthURL(state string) string

	// Authenticate exchanges the OAuth code, verifies the identity,
	// upserts the teacher record and returns a signed session token.
	Authenticate(ctx context.Context, code string) (string, error)
}

type ApprovalService interface {
	ListPending(ctx context.Context) ([]domain.Teacher, error)
	ListProcessed(ctx context.Context) ([]domain.Teacher, error)
	SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error
}
