package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weatherdash.app/pkg/errors"
)

// FlagModel represents one persisted session flag
type FlagModel struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;not null;uniqueIndex:idx_session_flag"`
	Key       string `gorm:"column:flag_key;size:64;not null;uniqueIndex:idx_session_flag"`
	Value     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FlagModel) TableName() string {
	return "session_flags"
}

// FlagRepositoryAdapter implements the FlagStore port using GORM
type FlagRepositoryAdapter struct {
	db *gorm.DB
}

// NewFlagRepositoryAdapter creates a new flag repository adapter
func NewFlagRepositoryAdapter(db *gorm.DB) *FlagRepositoryAdapter {
	return &FlagRepositoryAdapter{db: db}
}

// Get retrieves a flag value, ok is false when the flag was never set
func (r *FlagRepositoryAdapter) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if err := validateFlag(sessionID, key); err != nil {
		return "", false, err
	}

	var model FlagModel
	result := r.db.WithContext(ctx).
		Where("session_id = ? AND flag_key = ?", sessionID, key).
		First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, errors.NewDatabaseError("failed to find flag", result.Error)
	}

	return model.Value, true, nil
}

// Set inserts the flag or overwrites its value
func (r *FlagRepositoryAdapter) Set(ctx context.Context, sessionID, key, value string) error {
	if err := validateFlag(sessionID, key); err != nil {
		return err
	}

	model := &FlagModel{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "flag_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(model)
	if result.Error != nil {
		return errors.NewDatabaseError("failed to save flag", result.Error)
	}

	return nil
}

// Delete removes a flag; deleting a missing flag is not an error
func (r *FlagRepositoryAdapter) Delete(ctx context.Context, sessionID, key string) error {
	if err := validateFlag(sessionID, key); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("session_id = ? AND flag_key = ?", sessionID, key).
		Delete(&FlagModel{})
	if result.Error != nil {
		return errors.NewDatabaseError("failed to delete flag", result.Error)
	}

	return nil
}

// CountSessions returns the number of sessions with at least one stored flag
func (r *FlagRepositoryAdapter) CountSessions(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&FlagModel{}).
		Distinct("session_id").
		Count(&count)
	if result.Error != nil {
		return 0, errors.NewDatabaseError("failed to count sessions", result.Error)
	}
	return count, nil
}

func validateFlag(sessionID, key string) error {
	if sessionID == "" {
		return errors.NewValidationError("session id cannot be empty")
	}
	if key == "" {
		return errors.NewValidationError("flag key cannot be empty")
	}
	return nil
}
