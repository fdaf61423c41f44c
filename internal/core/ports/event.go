package ports

import (
	"context"
)

const (
	EventSignupRequested = "signup.requested"
	EventSignupProcessed = "signup.processed"
)

// SignupEvent describes a signup lifecycle change for downstream
// consumers (admin notifications and the like).
type SignupEvent struct {
	TeacherID string `json:"teacher_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Status    string `json:"status"`
}

type SignupEventPublisher interface {
	PublishSignupEvent(ctx context.Context, eventType string, evt SignupEvent) error
}
