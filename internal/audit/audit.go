// Package audit keeps a trail of logins, logouts and refused navigations.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"logichain-web/internal/models"
	"logichain-web/internal/session"

	"gorm.io/gorm"
)

const (
	ActionLogin    = "login"
	ActionLogout   = "logout"
	ActionRegister = "register"
	ActionDeny     = "deny"
	ActionExpired  = "session_expired"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Recorder interface {
	Record(ctx context.Context, e models.AuditLog)
}

// Entry fills the principal columns of a row from a session.
func Entry(s session.Session, action, path, outcome, details string) models.AuditLog {
	return models.AuditLog{
		PrincipalID: s.Principal.ID,
		Username:    s.Principal.Username,
		Role:        string(s.Principal.Role),
		Action:      action,
		Path:        path,
		Outcome:     outcome,
		Details:     details,
	}
}

// Store writes the trail with gorm. Write failures are logged and dropped:
// losing an audit row must not fail the page.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewStore(db *gorm.DB, log *slog.Logger) *Store {
	return &Store{db: db, log: log}
}

func (s *Store) Record(ctx context.Context, e models.AuditLog) {
	if s == nil || s.db == nil {
		return
	}
	// the row is written even if the browser went away mid-request
	ctx = context.WithoutCancel(ctx)
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		s.log.Warn("audit write failed", "action", e.Action, "error", err)
	}
}

func (s *Store) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []models.AuditLog
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list audit rows: %w", err)
	}
	return rows, nil
}

// Nop drops every row. It is used when no database is configured.
type Nop struct{}

func (Nop) Record(context.Context, models.AuditLog) {}

// Memory keeps rows in a slice; tests read them back.
type Memory struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (m *Memory) Record(_ context.Context, e models.AuditLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, e)
}

func (m *Memory) Rows() []models.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.rows...)
}
