package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/domain"
	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
)

const outboxChannelName = "outbox_channel"

type SQLRepository struct {
	db *sql.DB
}

var _ ports.TeacherRepository = (*SQLRepository)(nil)

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const teacherColumns = "id, email, COALESCE(name, ''), role, approval_status, created_at, updated_at"

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.Teacher, error) {
	var t domain.Teacher
	err := r.db.QueryRowContext(
		ctx,
		"SELECT "+teacherColumns+" FROM teachers WHERE email = $1",
		email,
	).Scan(&t.ID, &t.Email, &t.Name, &t.Role, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTeacherNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertOnSignIn relies on the unique index on email to serialize
// concurrent first sign-ins for the same address. A freshly created
// PENDING record also gets a signup.requested outbox event in the same
// transaction.
func (r *SQLRepository) UpsertOnSignIn(ctx context.Context, email, name string, admin bool) (*domain.Teacher, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	role := domain.RoleTeacher
	status := domain.StatusPending
	if admin {
		role = domain.RoleAdmin
		status = domain.StatusApproved
	}

	var t domain.Teacher
	var inserted bool
	err = tx.QueryRowContext(ctx, `
		INSERT INTO teachers (id, email, name, role, approval_status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			name            = COALESCE(NULLIF($3, ''), teachers.name),
			role            = CASE WHEN $6 THEN 'ADMIN' ELSE teachers.role END,
			approval_status = CASE WHEN $6 THEN 'APPROVED' ELSE teachers.approval_status END,
			updated_at      = NOW()
		RETURNING `+teacherColumns+`, (xmax = 0)`,
		uuid.NewString(), email, name, role, status, admin,
	).Scan(&t.ID, &t.Email, &t.Name, &t.Role, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt, &inserted)
	if err != nil {
		return nil, err
	}

	if inserted && t.ApprovalStatus == domain.StatusPending {
		if err := insertOutboxEvent(ctx, tx, ports.EventSignupRequested, ports.SignupEvent{
			TeacherID: t.ID,
			Email:     t.Email,
			Name:      t.Name,
			Status:    string(t.ApprovalStatus),
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLRepository) ListPending(ctx context.Context) ([]domain.Teacher, error) {
	return r.listByStatus(ctx, `
		SELECT `+teacherColumns+` FROM teachers
		WHERE approval_status = 'PENDING'
		ORDER BY created_at DESC`)
}

func (r *SQLRepository) ListProcessed(ctx context.Context) ([]domain.Teacher, error) {
	return r.listByStatus(ctx, `
		SELECT `+teacherColumns+` FROM teachers
		WHERE approval_status IN ('APPROVED', 'REJECTED')
		ORDER BY updated_at DESC`)
}

func (r *SQLRepository) listByStatus(ctx context.Context, query string) ([]domain.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []domain.Teacher
	for rows.Next() {
		var t domain.Teacher
		if err := rows.Scan(&t.ID, &t.Email, &t.Name, &t.Role, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// SetApprovalStatus only moves records out of PENDING; the WHERE clause
// makes an already-processed or unknown id a zero-row update, which is
// reported as success.
func (r *SQLRepository) SetApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var t domain.Teacher
	err = tx.QueryRowContext(ctx, `
		UPDATE teachers
		SET approval_status = $2, updated_at = NOW()
		WHERE id = $1 AND approval_status = 'PENDING'
		RETURNING `+teacherColumns,
		id, status,
	).Scan(&t.ID, &t.Email, &t.Name, &t.Role, &t.ApprovalStatus, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := insertOutboxEvent(ctx, tx, ports.EventSignupProcessed, ports.SignupEvent{
		TeacherID: t.ID,
		Email:     t.Email,
		Name:      t.Name,
		Status:    string(t.ApprovalStatus),
	}); err != nil {
		return err
	}

	return tx.Commit()
}

// insertOutboxEvent stores the event alongside the row mutation and pings
// the relay; the relay also sweeps periodically, so a lost notification is
// only a delay.
func insertOutboxEvent(ctx context.Context, tx *sql.Tx, eventType string, evt ports.SignupEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	eventID := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())`,
		eventID, eventType, payload,
	); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "SELECT pg_notify($1, $2)", outboxChannelName, eventID)
	return err
}
