package storage

import (
	"errors"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

// ErrNotFound indicates the requested row does not exist locally.
var ErrNotFound = errors.New("not found")

// Store defines the interface for local persistence: the pinned forum
// set and unsent investigation-note drafts. Nothing in here ever leaves
// the machine. The interface allows mock implementations in tests.
type Store interface {
	// Pinned forums
	PinForum(forumID int, title string) error
	UnpinForum(forumID int) error
	PinnedForums() ([]models.PinnedForum, error)
	IsPinned(forumID int) (bool, error)

	// Investigation-note drafts
	SaveDraft(reportID int, body string) (*models.NoteDraft, error)
	GetDraft(reportID int) (*models.NoteDraft, error)
	DeleteDraft(reportID int) error

	// Lifecycle
	Close() error
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)
