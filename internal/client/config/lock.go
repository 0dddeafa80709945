package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// LockInfo records who holds the lock.
type LockInfo struct {
	PID       int    `json:"pid"`
	StartedAt string `json:"started_at"`
}

// ErrAlreadyRunning indicates another interactive review session holds
// the lock. Two sessions would race on the local draft store.
var ErrAlreadyRunning = errors.New("another spctl review session is already running")

// LockFilePath is where the session lock lives, under the home dir
// next to the config.
func LockFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".spctl.lock"), nil
}

// AcquireLock claims the single-session lock, returning
// ErrAlreadyRunning when a live session already holds it.
func AcquireLock() error {
	lockPath, err := LockFilePath()
	if err != nil {
		return err
	}

	// A lock file only blocks us while its holder is still alive.
	if info, err := readLockFile(lockPath); err == nil {
		if isProcessRunning(info.PID) {
			return fmt.Errorf("%w (PID: %d)", ErrAlreadyRunning, info.PID)
		}
		// Holder is gone; the lock is stale.
		os.Remove(lockPath)
	}

	return writeLockFile(lockPath)
}

// ReleaseLock drops the lock on the way out.
func ReleaseLock() error {
	lockPath, err := LockFilePath()
	if err != nil {
		return err
	}

	// Never remove a lock another process wrote.
	if info, err := readLockFile(lockPath); err == nil {
		if info.PID == os.Getpid() {
			return os.Remove(lockPath)
		}
	}
	return nil
}

func readLockFile(path string) (*LockInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var info LockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func writeLockFile(path string) error {
	info := LockInfo{
		PID:       os.Getpid(),
		StartedAt: time.Now().Format(time.RFC3339),
	}
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess succeeds unconditionally on Unix; signal 0 does the real check.
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
