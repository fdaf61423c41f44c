package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
)

type statusCall struct {
	id     string
	status domain.ApprovalStatus
}

// recordingTeacherRepo records SetApprovalStatus calls and can fail on demand.
type recordingTeacherRepo struct {
	memTeacherRepo
	calls []statusCall
	err   error
}

func (r *recordingTeacherRepo) SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	r.calls = append(r.calls, statusCall{id: id, status: status})
	return r.err
}

type recordingPageCache struct {
	invalidated []string
}

func (c *recordingPageCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("cache miss")
}

func (c *recordingPageCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (c *recordingPageCache) Invalidate(ctx context.Context, key string) error {
	c.invalidated = append(c.invalidated, key)
	return nil
}

const validID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

func TestSetApprovalStatus_Transition(t *testing.T) {
	repo := &recordingTeacherRepo{}
	cache := &recordingPageCache{}
	svc := NewSignupApprovalService(repo, cache)

	if err := svc.SetApprovalStatus(context.Background(), validID, domain.StatusApproved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.calls) != 1 {
		t.Fatalf("expected one store call, got %d", len(repo.calls))
	}
	if repo.calls[0] != (statusCall{id: validID, status: domain.StatusApproved}) {
		t.Errorf("unexpected store call: %+v", repo.calls[0])
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != SignupPageCacheKey {
		t.Errorf("expected page cache invalidation for %q, got %v", SignupPageCacheKey, cache.invalidated)
	}
}

func TestSetApprovalStatus_MalformedInputIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		status domain.ApprovalStatus
	}{
		{name: "empty id", id: "", status: domain.StatusApproved},
		{name: "non-uuid id", id: "not-a-uuid", status: domain.StatusRejected},
		{name: "pending is not a target state", id: validID, status: domain.StatusPending},
		{name: "unknown status", id: validID, status: domain.ApprovalStatus("MAYBE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingTeacherRepo{}
			cache := &recordingPageCache{}
			svc := NewSignupApprovalService(repo, cache)

			if err := svc.SetApprovalStatus(context.Background(), tt.id, tt.status); err != nil {
				t.Fatalf("malformed input must not raise, got %v", err)
			}
			if len(repo.calls) != 0 {
				t.Errorf("expected no store call, got %d", len(repo.calls))
			}
			if len(cache.invalidated) != 0 {
				t.Errorf("expected no cache invalidation, got %v", cache.invalidated)
			}
		})
	}
}

func TestSetApprovalStatus_StoreErrorPropagates(t *testing.T) {
	repo := &recordingTeacherRepo{err: errors.New("database down")}
	cache := &recordingPageCache{}
	svc := NewSignupApprovalService(repo, cache)

	if err := svc.SetApprovalStatus(context.Background(), validID, domain.StatusRejected); err == nil {
		t.Fatal("store failures must propagate")
	}
	if len(cache.invalidated) != 0 {
		t.Error("cache must not be invalidated when the store fails")
	}
}
