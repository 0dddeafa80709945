package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLiteStore is the gorm-backed Store used by the CLI and TUI.
type SQLiteStore struct {
	db *gorm.DB
}

// DefaultPath returns the database location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".spctl.db"), nil
}

// NewSQLiteStore opens (creating if needed) the local database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	if err := db.AutoMigrate(&models.PinnedForum{}, &models.NoteDraft{}); err != nil {
		return nil, fmt.Errorf("migrating local database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// PinForum adds a forum to the pinned set. Pinning twice is a no-op.
func (s *SQLiteStore) PinForum(forumID int, title string) error {
	var existing models.PinnedForum
	err := s.db.Where("forum_id = ?", forumID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(&models.PinnedForum{ForumID: forumID, Title: title}).Error
}

// UnpinForum removes a forum from the pinned set.
func (s *SQLiteStore) UnpinForum(forumID int) error {
	result := s.db.Where("forum_id = ?", forumID).Delete(&models.PinnedForum{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PinnedForums returns all pins, oldest first.
func (s *SQLiteStore) PinnedForums() ([]models.PinnedForum, error) {
	var pins []models.PinnedForum
	if err := s.db.Order("created_at asc").Find(&pins).Error; err != nil {
		return nil, err
	}
	return pins, nil
}

// IsPinned reports whether the forum is in the pinned set.
func (s *SQLiteStore) IsPinned(forumID int) (bool, error) {
	var count int64
	if err := s.db.Model(&models.PinnedForum{}).Where("forum_id = ?", forumID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveDraft creates or overwrites the draft for a report. One draft per
// report; the draft survives until the notes submit succeeds.
func (s *SQLiteStore) SaveDraft(reportID int, body string) (*models.NoteDraft, error) {
	var draft models.NoteDraft
	err := s.db.Where("report_id = ?", reportID).First(&draft).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		draft = models.NoteDraft{
			ID:        uuid.NewString(),
			ReportID:  reportID,
			Body:      body,
			UpdatedAt: time.Now(),
		}
		if err := s.db.Create(&draft).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		draft.Body = body
		draft.UpdatedAt = time.Now()
		if err := s.db.Save(&draft).Error; err != nil {
			return nil, err
		}
	}
	return &draft, nil
}

// GetDraft returns the draft for a report, or ErrNotFound.
func (s *SQLiteStore) GetDraft(reportID int) (*models.NoteDraft, error) {
	var draft models.NoteDraft
	err := s.db.Where("report_id = ?", reportID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// DeleteDraft removes the draft for a report. Missing drafts are fine;
// deleting after a successful submit must be idempotent.
func (s *SQLiteStore) DeleteDraft(reportID int) error {
	return s.db.Where("report_id = ?", reportID).Delete(&models.NoteDraft{}).Error
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
