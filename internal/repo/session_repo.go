// Package repo – persistent session store.
//
// SQLiteSessionStore implements session.Store on top of GORM so that a
// webhook deployment (where the hosting runtime may recycle processes)
// keeps user sessions across restarts. It follows the thin-repository
// approach: no business logic, only upsert/select/delete.
//
// Error semantics: absent rows are not errors. Get reports them via
// its boolean, Clear treats them as a no-op. Raw gorm errors propagate
// for real DB failures.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rdwinata/lapakbot/internal/domain"
)

// SQLiteSessionStore persists one SessionRecord row per user.
type SQLiteSessionStore struct {
	DB *gorm.DB
}

// NewSQLiteSessionStore wraps db as a session store.
func NewSQLiteSessionStore(db *gorm.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{DB: db}
}

// Set upserts the mode for userID.
func (s *SQLiteSessionStore) Set(ctx context.Context, userID string, mode domain.Mode) error {
	rec := domain.SessionRecord{
		UserID:    userID,
		Mode:      string(mode),
		UpdatedAt: time.Now().UTC(),
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mode", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get returns the stored mode for userID, if any.
func (s *SQLiteSessionStore) Get(ctx context.Context, userID string) (domain.Mode, bool, error) {
	var rec domain.SessionRecord
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ModeNone, false, nil
	}
	if err != nil {
		return domain.ModeNone, false, err
	}
	return domain.Mode(rec.Mode), true, nil
}

// Clear deletes the session row for userID; missing rows are a no-op.
func (s *SQLiteSessionStore) Clear(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.SessionRecord{}).Error
}
