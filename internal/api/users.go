package api

import (
	"context"
	"fmt"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
)

// UserActionRequest is the body of every moderation action against a
// user. Duration is set only for time-bounded bans; a permanent ban
// omits it. ReportID ties the resulting log entry back to the report
// that triggered the action.
type UserActionRequest struct {
	Reason   string `json:"reason"`
	ReportID int    `json:"report_id,omitempty"`
	Duration *int   `json:"duration,omitempty"`
}

// UserAction issues a moderation action (warn, ban, unban, deactivate,
// activate) against a user. The server appends the matching moderation
// history entry; this call returns nothing because the caller re-fetches.
func (c *Client) UserAction(ctx context.Context, userID int, action moderation.Action, req UserActionRequest) error {
	if !action.IsUserAction() {
		return fmt.Errorf("%s is not a user action", action)
	}
	if err := c.post(ctx, fmt.Sprintf("/admin/users/%d/%s", userID, action), req, nil); err != nil {
		return fmt.Errorf("%s user %d: %w", action, userID, err)
	}
	return nil
}

// GetUser fetches the current snapshot of a user's moderation flags.
// Used to refresh the detail view after an action changed is_banned or
// is_active.
func (c *Client) GetUser(ctx context.Context, userID int) (*models.TargetUser, error) {
	var user models.TargetUser
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d", userID), &user); err != nil {
		return nil, fmt.Errorf("fetching user %d: %w", userID, err)
	}
	return &user, nil
}

// ModerationHistory fetches a user's full moderation log, newest first,
// plus their current ban/active flags.
func (c *Client) ModerationHistory(ctx context.Context, userID int) (*models.ModerationHistory, error) {
	var history models.ModerationHistory
	if err := c.get(ctx, fmt.Sprintf("/admin/users/%d/moderation-history", userID), &history); err != nil {
		return nil, fmt.Errorf("fetching moderation history for user %d: %w", userID, err)
	}
	return &history, nil
}
