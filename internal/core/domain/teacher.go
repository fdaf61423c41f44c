package domain

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

var ErrTeacherNotFound = errors.New("teacher not found")

// Teacher is one identity record per signed-in email.
// Records are never deleted; approval_status is the access lifecycle.
type Teacher struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	Name           string         `json:"name,omitempty"`
	Role           Role           `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// StatusPath returns the status page a not-yet-approved caller belongs on.
// Anything that is not exactly REJECTED maps to /pending.
func (s ApprovalStatus) StatusPath() string {
	if s == StatusRejected {
		return "/rejected"
	}
	return "/pending"
}

// NormalizeRole collapses unknown roles to TEACHER.
func NormalizeRole(raw string) Role {
	if Role(raw) == RoleAdmin {
		return RoleAdmin
	}
	return RoleTeacher
}

// NormalizeApprovalStatus collapses unknown statuses to PENDING,
// never to APPROVED.
func NormalizeApprovalStatus(raw string) ApprovalStatus {
	switch ApprovalStatus(raw) {
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}
