package moderation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

// Action is a workflow or side-channel operation a moderator can take on
// a report. Which actions are offered at any moment is decided by the
// Policy, never by the caller.
type Action string

const (
	// Workflow transitions.
	ActionTake     Action = "take"
	ActionTakeOver Action = "take_over"
	ActionNotes    Action = "notes"
	ActionResolve  Action = "resolve"
	ActionDismiss  Action = "dismiss"
	ActionEmail    Action = "send_email"

	// User actions, logged server-side against the target user.
	ActionWarn       Action = "warn"
	ActionBan        Action = "ban"
	ActionUnban      Action = "unban"
	ActionDeactivate Action = "deactivate"
	ActionActivate   Action = "activate"
)

// UserActions are the side-channel actions issued against the reported
// user rather than the report itself.
var UserActions = []Action{ActionWarn, ActionBan, ActionUnban, ActionDeactivate, ActionActivate}

// IsUserAction reports whether a targets the reported user.
func (a Action) IsUserAction() bool {
	for _, ua := range UserActions {
		if a == ua {
			return true
		}
	}
	return false
}

// Label returns the human-readable label used in CLI output and the TUI.
func (a Action) Label() string {
	switch a {
	case ActionTake:
		return "Take Report"
	case ActionTakeOver:
		return "Take Over"
	case ActionNotes:
		return "Update Notes"
	case ActionResolve:
		return "Resolve"
	case ActionDismiss:
		return "Dismiss"
	case ActionEmail:
		return "Send Email"
	default:
		return strings.ToUpper(string(a)[:1]) + string(a)[1:]
	}
}

// BanDurations are the selectable time-bounded ban lengths, in days.
var BanDurations = []int{1, 2, 7, 30, 365}

// PermanentBan is the duration keyword for a ban without an end date.
// It is encoded on the wire as an absent duration.
const PermanentBan = "permanent"

// ParseBanDuration converts a duration selection into its wire form:
// nil for a permanent ban, a day count from BanDurations otherwise.
func ParseBanDuration(s string) (*int, error) {
	if strings.EqualFold(strings.TrimSpace(s), PermanentBan) {
		return nil, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid ban duration %q: use one of 1, 2, 7, 30, 365 or %q", s, PermanentBan)
	}
	for _, d := range BanDurations {
		if days == d {
			return &days, nil
		}
	}
	return nil, fmt.Errorf("unsupported ban duration %d: use one of 1, 2, 7, 30, 365 or %q", days, PermanentBan)
}

// ValidateReason rejects the empty free-text reason every action
// requires, before any request is issued.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}
	return nil
}

// HistoryAction maps a client action and its duration to the log entry
// type the server records for it.
func HistoryAction(a Action, duration *int) models.HistoryActionType {
	if a == ActionBan && duration != nil {
		return models.HistoryTimeBan
	}
	switch a {
	case ActionWarn:
		return models.HistoryWarn
	case ActionBan:
		return models.HistoryBan
	case ActionUnban:
		return models.HistoryUnban
	case ActionDeactivate:
		return models.HistoryDeactivate
	case ActionActivate:
		return models.HistoryActivate
	}
	return ""
}
